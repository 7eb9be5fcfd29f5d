package risk

import "math"

// Score bands.
const (
	CriticalThreshold = 15
	HighThreshold     = 10
	MediumThreshold   = 5
)

// Stats is the aggregated summary of a subtree.
//
// AverageRiskScore is only meaningful on the value returned by SiteStats;
// partial results (AssetStats, ZoneStats, Merge) leave it at zero.
type Stats struct {
	TotalRiskScore    int            `json:"totalRiskScore"`
	RiskCount         int            `json:"riskCount"`
	CriticalCount     int            `json:"criticalCount"`
	HighCount         int            `json:"highCount"`
	AverageRiskScore  float64        `json:"averageRiskScore"`
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
}

func emptyStats() Stats {
	return Stats{CategoryBreakdown: map[string]int{}}
}

// Merge sums two partial aggregates. It is associative and commutative and
// does not modify its arguments.
func Merge(a, b Stats) Stats {
	cats := make(map[string]int, len(a.CategoryBreakdown)+len(b.CategoryBreakdown))
	for k, v := range a.CategoryBreakdown {
		cats[k] += v
	}
	for k, v := range b.CategoryBreakdown {
		cats[k] += v
	}

	return Stats{
		TotalRiskScore:    a.TotalRiskScore + b.TotalRiskScore,
		RiskCount:         a.RiskCount + b.RiskCount,
		CriticalCount:     a.CriticalCount + b.CriticalCount,
		HighCount:         a.HighCount + b.HighCount,
		CategoryBreakdown: cats,
	}
}

// AssetStats folds the risk factors of a single asset.
func AssetStats(a Asset) Stats {
	st := emptyStats()
	for _, r := range a.Risks {
		score := r.Score()
		st.TotalRiskScore += score
		st.RiskCount++

		switch {
		case score >= CriticalThreshold:
			st.CriticalCount++
		case score >= HighThreshold:
			st.HighCount++
		}

		st.CategoryBreakdown[r.CategoryLabel()]++
	}
	return st
}

// ZoneStats aggregates a zone with all of its assets and sub-zones.
func ZoneStats(z *Zone) (Stats, error) {
	return zoneStats(z, guard{}, nil)
}

func zoneStats(z *Zone, g guard, path []string) (Stats, error) {
	if err := g.enter(z, path); err != nil {
		return Stats{}, err
	}
	path = append(path, z.Name)

	st := emptyStats()
	for _, a := range z.Assets {
		st = Merge(st, AssetStats(a))
	}
	for _, sub := range z.SubZones {
		if sub == nil {
			continue
		}
		subStats, err := zoneStats(sub, g, path)
		if err != nil {
			return Stats{}, err
		}
		st = Merge(st, subStats)
	}
	return st, nil
}

// SiteStats aggregates the whole site and computes the average score,
// rounded to one decimal place.
func SiteStats(s Site) (Stats, error) {
	g := guard{}
	st := emptyStats()
	for i := range s.RootZones {
		zs, err := zoneStats(&s.RootZones[i], g, nil)
		if err != nil {
			return Stats{}, err
		}
		st = Merge(st, zs)
	}

	if st.RiskCount > 0 {
		st.AverageRiskScore = round1(float64(st.TotalRiskScore) / float64(st.RiskCount))
	}
	return st, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
