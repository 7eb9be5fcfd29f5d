package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-assessment/internal/risk"
)

const siteJSON = `{
  "id": "s1",
  "name": "Stabilimento Nord",
  "rootZones": [{
    "id": "z1",
    "name": "Capannone",
    "subZones": [{
      "id": "z2",
      "name": "Area Presse",
      "assets": [{
        "id": "a1",
        "name": "Pressa",
        "risks": [
          {"id": "r1", "name": "Cavi scoperti", "probability": 4, "severity": 5, "category": "Elettrico", "status": "OPEN", "estimatedCost": "1200"},
          {"id": "r2", "name": "Rumore", "probability": 2, "severity": 2, "status": "RESOLVED"}
        ]
      }]
    }]
  }]
}`

func writeSite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte(siteJSON), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsCmd(t *testing.T) {
	out, err := run(t, "", "stats", writeSite(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Stabilimento Nord")
	assert.Contains(t, out, "Rischi:             2")
	assert.Contains(t, out, "Indice totale:      24")
	assert.Contains(t, out, "Punteggio medio:    12.0")
	assert.Contains(t, out, "Critici:            1")
	assert.Contains(t, out, "Elettrico")
	assert.Contains(t, out, "Generico")
}

func TestStatsCmd_Stdin(t *testing.T) {
	out, err := run(t, siteJSON, "stats", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Rischi:             2")
}

func TestRowsCmd(t *testing.T) {
	out, err := run(t, "", "rows", writeSite(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Capannone > Area Presse > Pressa")
	assert.Contains(t, out, "4x5")
	assert.Contains(t, out, "2 rischi, indice 24, critici 1, costo stimato 1200.00")
}

func TestRowsCmd_JSON(t *testing.T) {
	out, err := run(t, "", "rows", "--json", writeSite(t))
	require.NoError(t, err)

	var rows []risk.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "r1", rows[0].RiskID)
	assert.Equal(t, 20, rows[0].Score)
}

func TestReportCmd_HTML(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "report.html")
	out, err := run(t, "", "report", writeSite(t), "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Report scritto in")

	html, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Stabilimento Nord")
}

func TestReportCmd_RequiresOutput(t *testing.T) {
	_, err := run(t, "", "report", writeSite(t))
	assert.EqualError(t, err, "--output is required")
}

func TestCatalogCmd(t *testing.T) {
	out, err := run(t, "", "catalog", "--category", "Elettrico")
	require.NoError(t, err)
	assert.Contains(t, out, "elec-001")
	assert.NotContains(t, out, "fire-001")

	out, err = run(t, "", "catalog", "-q", "zzz-nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "Nessun rischio trovato")
}

func TestBadInput(t *testing.T) {
	_, err := run(t, "{not json", "stats", "-")
	assert.Error(t, err)

	_, err = run(t, "", "stats", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "", "stats")
	assert.Error(t, err)
}
