package risk

import "github.com/shopspring/decimal"

// PathSeparator joins ancestor names in a report row path.
const PathSeparator = " > "

// Row is one risk factor in the flattened report table.
type Row struct {
	Path        string          `json:"path"`
	RiskID      string          `json:"riskId"`
	RiskName    string          `json:"riskName"`
	Category    string          `json:"category"`
	Probability int             `json:"probability"`
	Severity    int             `json:"severity"`
	Score       int             `json:"score"`
	Status      Status          `json:"status"`
	Cost        decimal.Decimal `json:"cost"`
}

// Level returns the report band of the row score.
func (r Row) Level() Level {
	return LevelOf(r.Score)
}

// Flatten lists every risk factor of the site, depth first, with the path of
// the owning asset. At every zone sub-zones come before assets.
func Flatten(s Site) ([]Row, error) {
	var rows []Row
	g := guard{}
	for i := range s.RootZones {
		var err error
		rows, err = flattenZone(rows, &s.RootZones[i], "", g, nil)
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func flattenZone(rows []Row, z *Zone, prefix string, g guard, names []string) ([]Row, error) {
	if err := g.enter(z, names); err != nil {
		return nil, err
	}
	path := joinPath(prefix, z.Name)
	names = append(names, z.Name)

	for _, sub := range z.SubZones {
		if sub == nil {
			continue
		}
		var err error
		rows, err = flattenZone(rows, sub, path, g, names)
		if err != nil {
			return nil, err
		}
	}
	for _, a := range z.Assets {
		rows = appendAssetRows(rows, a, joinPath(path, a.Name))
	}
	return rows, nil
}

func appendAssetRows(rows []Row, a Asset, path string) []Row {
	for _, r := range a.Risks {
		rows = append(rows, Row{
			Path:        path,
			RiskID:      r.ID,
			RiskName:    r.Name,
			Category:    r.CategoryLabel(),
			Probability: r.Probability,
			Severity:    r.Severity,
			Score:       r.Score(),
			Status:      r.Status,
			Cost:        r.Cost(),
		})
	}
	return rows
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + PathSeparator + name
}

// Summary holds the reductions shown at the top of the report.
type Summary struct {
	RowCount      int             `json:"rowCount"`
	TotalScore    int             `json:"totalScore"`
	CriticalCount int             `json:"criticalCount"`
	TotalCost     decimal.Decimal `json:"totalCost"`
}

func Summarize(rows []Row) Summary {
	sum := Summary{RowCount: len(rows), TotalCost: decimal.Zero}
	for _, r := range rows {
		sum.TotalScore += r.Score
		if r.Score >= CriticalThreshold {
			sum.CriticalCount++
		}
		sum.TotalCost = sum.TotalCost.Add(r.Cost)
	}
	return sum
}
