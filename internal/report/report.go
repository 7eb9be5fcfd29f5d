// Package report builds the printable risk-assessment report of a site.
package report

import (
	"time"

	"risk-assessment/internal/risk"
)

// Document is everything the report template needs.
type Document struct {
	Site        risk.Site
	GeneratedAt time.Time
	Rows        []risk.Row
	Summary     risk.Summary
	Stats       risk.Stats
}

func Build(site risk.Site, at time.Time) (*Document, error) {
	rows, err := risk.Flatten(site)
	if err != nil {
		return nil, err
	}
	stats, err := risk.SiteStats(site)
	if err != nil {
		return nil, err
	}
	return &Document{
		Site:        site,
		GeneratedAt: at,
		Rows:        rows,
		Summary:     risk.Summarize(rows),
		Stats:       stats,
	}, nil
}
