package config

// ApplicationConfiguration holds settings of the application itself, not
// related to the conformance cases.
type ApplicationConfiguration struct {
	LogLevel   string       `yaml:"LogLevel"`
	LogPath    string       `yaml:"LogPath"`
	Prometheus BasicService `yaml:"Prometheus"`
}
