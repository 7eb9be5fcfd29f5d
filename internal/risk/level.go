package risk

// Level is the band a score falls into.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

func LevelOf(score int) Level {
	switch {
	case score >= CriticalThreshold:
		return LevelCritical
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Label is the Italian label used in reports.
func (l Level) Label() string {
	switch l {
	case LevelCritical:
		return "Critico"
	case LevelHigh:
		return "Alto"
	case LevelMedium:
		return "Medio"
	default:
		return "Basso"
	}
}
