package conformance

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	json "github.com/nspcc-dev/go-ordered-json"
)

// CaseResult is the outcome of a single case.
type CaseResult struct {
	Name     string
	Passed   bool
	Duration time.Duration
	Error    error
}

// Result is the outcome of a conformance run.
type Result struct {
	RunID    uuid.UUID
	Start    time.Time
	Duration time.Duration
	Cases    []CaseResult
}

type (
	resultAux struct {
		RunID    string          `json:"id"`
		Start    time.Time       `json:"start"`
		Duration int64           `json:"durationms"`
		Total    int             `json:"total"`
		Passed   int             `json:"passed"`
		Cases    []caseResultAux `json:"cases"`
	}
	caseResultAux struct {
		Name     string `json:"name"`
		Passed   bool   `json:"passed"`
		Duration int64  `json:"durationms"`
		Error    string `json:"error,omitempty"`
	}
)

// Passed returns the number of passed cases.
func (r *Result) Passed() int {
	var n int
	for i := range r.Cases {
		if r.Cases[i].Passed {
			n++
		}
	}
	return n
}

// OK is true when all executed cases have passed.
func (r *Result) OK() bool {
	return r.Passed() == len(r.Cases)
}

// MarshalJSON implements the json.Marshaler interface.
func (r *Result) MarshalJSON() ([]byte, error) {
	aux := resultAux{
		RunID:    r.RunID.String(),
		Start:    r.Start.UTC(),
		Duration: r.Duration.Milliseconds(),
		Total:    len(r.Cases),
		Passed:   r.Passed(),
		Cases:    make([]caseResultAux, len(r.Cases)),
	}
	for i, c := range r.Cases {
		aux.Cases[i] = caseResultAux{
			Name:     c.Name,
			Passed:   c.Passed,
			Duration: c.Duration.Milliseconds(),
		}
		if c.Error != nil {
			aux.Cases[i].Error = c.Error.Error()
		}
	}
	return json.Marshal(aux)
}

// JSON returns an indented JSON report.
func (r *Result) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Table renders the result as a text table to w.
func (r *Result) Table(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Conformance run %s (%s)", r.RunID, formatDuration(r.Duration)))
	t.AppendHeader(table.Row{"#", "Case", "Duration", "Status", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Error", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})
	for i, c := range r.Cases {
		var errText string
		if c.Error != nil {
			errText = c.Error.Error()
		}
		t.AppendRow(table.Row{i + 1, c.Name, formatDuration(c.Duration), status(c.Passed), errText})
	}
	t.AppendFooter(table.Row{"", "TOTAL", formatDuration(r.Duration), fmt.Sprintf("%d/%d", r.Passed(), len(r.Cases)), ""})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func status(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
}
