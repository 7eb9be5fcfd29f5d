package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"risk-assessment/internal/catalog"
	"risk-assessment/internal/logger"
	"risk-assessment/internal/report"
	"risk-assessment/internal/risk"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Risk assessment tools for site files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newStatsCmd(), newRowsCmd(), newReportCmd(), newCatalogCmd())
	return root
}

// readSite decodes a site from path, or from stdin when path is "-".
func readSite(cmd *cobra.Command, path string) (risk.Site, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return risk.Site{}, err
		}
		defer f.Close()
		r = f
	}

	var site risk.Site
	if err := json.NewDecoder(r).Decode(&site); err != nil {
		return risk.Site{}, fmt.Errorf("decode site %s: %w", path, err)
	}
	return site, nil
}

func levelColor(l risk.Level) *color.Color {
	switch l {
	case risk.LevelCritical:
		return color.New(color.FgHiRed, color.Bold)
	case risk.LevelHigh:
		return color.New(color.FgRed)
	case risk.LevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <site.json>",
		Short: "Print the aggregated statistics of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := readSite(cmd, args[0])
			if err != nil {
				return err
			}
			stats, err := risk.SiteStats(site)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprintf(out, "%s\n", site.Name)
			fmt.Fprintf(out, "Rischi:             %d\n", stats.RiskCount)
			fmt.Fprintf(out, "Indice totale:      %d\n", stats.TotalRiskScore)
			fmt.Fprintf(out, "Punteggio medio:    %.1f\n", stats.AverageRiskScore)
			levelColor(risk.LevelCritical).Fprintf(out, "Critici:            %d\n", stats.CriticalCount)
			levelColor(risk.LevelHigh).Fprintf(out, "Alti:               %d\n", stats.HighCount)

			if len(stats.CategoryBreakdown) > 0 {
				fmt.Fprintln(out, "Per categoria:")
				for _, c := range sortedCategories(stats.CategoryBreakdown) {
					fmt.Fprintf(out, "  %-20s %d\n", c.name, c.count)
				}
			}
			return nil
		},
	}
}

func newRowsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rows <site.json>",
		Short: "List every risk with its location path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := readSite(cmd, args[0])
			if err != nil {
				return err
			}
			rows, err := risk.Flatten(site)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PERCORSO\tRISCHIO\tPxD\tPUNTEGGIO\tSTATO\tCOSTO")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%s\t%s\n",
					r.Path, r.RiskName, r.Probability, r.Severity,
					levelColor(r.Level()).Sprint(r.Score), r.Status, r.Cost.StringFixed(2))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			sum := risk.Summarize(rows)
			fmt.Fprintf(out, "\n%d rischi, indice %d, critici %d, costo stimato %s\n",
				sum.RowCount, sum.TotalScore, sum.CriticalCount, sum.TotalCost.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")
	return cmd
}

func newReportCmd() *cobra.Command {
	var (
		output    string
		pdf       bool
		chromeURL string
		noSandbox bool
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "report <site.json>",
		Short: "Render the HTML (or PDF) report of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			site, err := readSite(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := report.Build(site, time.Now())
			if err != nil {
				return err
			}

			var html strings.Builder
			if err := report.RenderHTML(&html, doc); err != nil {
				return err
			}
			content := []byte(html.String())

			if pdf {
				log, err := logger.NewForEnvironment("development")
				if err != nil {
					return err
				}
				r := report.NewChromeRenderer(report.ChromeConfig{
					RemoteURL: chromeURL,
					NoSandbox: noSandbox,
					Timeout:   timeout,
				}, log)
				defer r.Close()

				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()
				if content, err = r.RenderPDF(ctx, content); err != nil {
					return err
				}
			}

			if err := os.WriteFile(output, content, 0o644); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Report scritto in %s (%d righe)\n", output, len(doc.Rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "print the report to PDF with headless Chrome")
	cmd.Flags().StringVar(&chromeURL, "chrome-url", os.Getenv("CHROME_REMOTE_URL"), "devtools URL of a running Chrome")
	cmd.Flags().BoolVar(&noSandbox, "no-sandbox", false, "launch Chrome without its sandbox")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "PDF rendering timeout")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	var category, query string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the standard risk library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			matches := cat.Search(category, query)
			if len(matches) == 0 {
				fmt.Fprintf(out, "Nessun rischio trovato. Categorie: %s\n", strings.Join(cat.Categories(), ", "))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORIA\tNOME\tGRAVITÀ")
			for _, r := range matches {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.ID, r.Category, r.Name, r.SuggestedSeverity)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only risks of this category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "text to search in name and description")
	return cmd
}

type categoryCount struct {
	name  string
	count int
}

// sortedCategories orders by count, most frequent first, then by name.
func sortedCategories(m map[string]int) []categoryCount {
	out := make([]categoryCount, 0, len(m))
	for k, v := range m {
		out = append(out, categoryCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
