package value

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ToLocaleString is like Join(","), but numbers are formatted according to
// the conventions of the given language (grouping and decimal separators).
func (a *Array) ToLocaleString(tag language.Tag) string {
	var sb strings.Builder
	a.toLocale(&sb, message.NewPrinter(tag), make(map[*Array]bool))
	return sb.String()
}

func (a *Array) toLocale(sb *strings.Builder, p *message.Printer, seen map[*Array]bool) {
	seen[a] = true
	defer delete(seen, a)
	for i, item := range a.value {
		if i > 0 {
			sb.WriteByte(',')
		}
		if IsNullish(item) {
			continue
		}
		switch it := item.(type) {
		case *Array:
			if !seen[it] {
				it.toLocale(sb, p, seen)
			}
		case Number:
			f := float64(it)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				sb.WriteString(it.String())
			} else {
				sb.WriteString(p.Sprint(number.Decimal(f)))
			}
		default:
			sb.WriteString(it.String())
		}
	}
}
