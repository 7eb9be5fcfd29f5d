package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_PathExample(t *testing.T) {
	site := Site{RootZones: []Zone{{
		Name: "Capannone",
		SubZones: []*Zone{{
			Name: "Area Presse",
			Assets: []Asset{{
				Name:  "Pressa",
				Risks: []RiskFactor{{Name: "Cavi scoperti", Probability: 4, Severity: 5, Status: StatusOpen}},
			}},
		}},
	}}}

	rows, err := Flatten(site)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Capannone > Area Presse > Pressa", row.Path)
	assert.Equal(t, "Cavi scoperti", row.RiskName)
	assert.Equal(t, 20, row.Score)
	assert.Equal(t, StatusOpen, row.Status)
	assert.True(t, row.Cost.Equal(decimal.Zero))
	assert.Equal(t, LevelCritical, row.Level())
}

func TestFlatten_Order(t *testing.T) {
	rows, err := Flatten(sampleSite())
	require.NoError(t, err)

	var paths []string
	for _, r := range rows {
		paths = append(paths, r.Path+" / "+r.RiskName)
	}
	// sub-zones before assets at every level
	assert.Equal(t, []string{
		"Capannone > Area Presse > Pressa / Cavi scoperti",
		"Capannone > Area Presse > Pressa / Protezioni assenti",
		"Capannone > Scaffale / Carico eccessivo",
	}, paths)
}

func TestFlatten_RowCountMatchesStats(t *testing.T) {
	sites := []Site{
		{},
		sampleSite(),
		{RootZones: []Zone{{Name: "Solo", Assets: []Asset{{Name: "Vuoto"}}}}},
	}
	for _, s := range sites {
		rows, err := Flatten(s)
		require.NoError(t, err)
		st, err := SiteStats(s)
		require.NoError(t, err)
		assert.Equal(t, st.RiskCount, len(rows))
	}
}

func TestFlatten_EmptySite(t *testing.T) {
	rows, err := Flatten(Site{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFlatten_Cycle(t *testing.T) {
	z := &Zone{ID: "self", Name: "Self"}
	z.SubZones = []*Zone{z}
	site := Site{RootZones: []Zone{{Name: "Root", SubZones: []*Zone{z}}}}

	rows, err := Flatten(site)
	assert.ErrorIs(t, err, ErrCyclicStructure)
	assert.Nil(t, rows)
}

func TestSummarize(t *testing.T) {
	rows, err := Flatten(sampleSite())
	require.NoError(t, err)

	sum := Summarize(rows)
	assert.Equal(t, 3, sum.RowCount)
	assert.Equal(t, 33, sum.TotalScore)
	assert.Equal(t, 1, sum.CriticalCount)
	assert.Equal(t, "1500", sum.TotalCost.String())
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	assert.Zero(t, sum.RowCount)
	assert.True(t, sum.TotalCost.IsZero())
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, LevelCritical, LevelOf(15))
	assert.Equal(t, LevelHigh, LevelOf(14))
	assert.Equal(t, LevelHigh, LevelOf(10))
	assert.Equal(t, LevelMedium, LevelOf(9))
	assert.Equal(t, LevelMedium, LevelOf(5))
	assert.Equal(t, LevelLow, LevelOf(4))
	assert.Equal(t, "Critico", LevelCritical.Label())
}
