package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"risk-assessment/internal/risk"
)

//go:embed report.html.tmpl
var reportTemplate string

var printer = message.NewPrinter(language.Italian)

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"money":      formatMoney,
	"date":       formatDate,
	"badge":      badgeClass,
	"categories": sortedCategories,
}).Parse(reportTemplate))

// RenderHTML writes the standalone HTML report.
func RenderHTML(w io.Writer, doc *Document) error {
	if err := tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// formatMoney prints euros with Italian grouping, e.g. "€ 12.500" or "€ 1.250,50".
func formatMoney(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "€ " + printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return "€ " + printer.Sprintf("%.2f", f)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func badgeClass(score int) string {
	switch risk.LevelOf(score) {
	case risk.LevelCritical:
		return "crit"
	case risk.LevelHigh:
		return "high"
	case risk.LevelMedium:
		return "med"
	default:
		return "low"
	}
}

type categoryCount struct {
	Name  string
	Count int
}

// sortedCategories orders the breakdown by count, then name.
func sortedCategories(m map[string]int) []categoryCount {
	out := make([]categoryCount, 0, len(m))
	for k, v := range m {
		out = append(out, categoryCount{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
