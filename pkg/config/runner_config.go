package config

import "fmt"

// Result output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Runner contains conformance runner settings.
type Runner struct {
	// KeepGoing makes the runner execute all cases and report every failure
	// instead of stopping at the first one.
	KeepGoing bool `yaml:"KeepGoing"`
	// Cases limits the run to the named cases, all cases are run if empty.
	Cases []string `yaml:"Cases"`
	// Format is the output format of the final report.
	Format string `yaml:"Format"`
}

// Validate checks Runner settings for consistency.
func (r Runner) Validate() error {
	switch r.Format {
	case "", FormatText, FormatTable, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid Runner.Format %q: must be one of %s, %s or %s", r.Format, FormatText, FormatTable, FormatJSON)
	}
}
