package handlers

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-assessment/internal/risk"
)

func TestReportFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Stabilimento Nord", "Report_Stabilimento_Nord.pdf"},
		{"  Magazzino/Est #2 ", "Report_Magazzino_Est__2.pdf"},
		{"Caffè-Sud", "Report_Caffè-Sud.pdf"},
		{"", "Report_progetto.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reportFilename(tt.name))
		})
	}
}

func TestRiskStatusValidation(t *testing.T) {
	RegisterValidators()

	type body struct {
		Status *risk.Status `binding:"omitempty,riskstatus"`
	}
	open, bogus := risk.StatusInProgress, risk.Status("DONE")

	assert.NoError(t, binding.Validator.ValidateStruct(body{}))
	assert.NoError(t, binding.Validator.ValidateStruct(body{Status: &open}))

	err := binding.Validator.ValidateStruct(body{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, []string{"Status: riskstatus"}, validationDetails(err))
}

func TestValidationDetails_PlainError(t *testing.T) {
	assert.Equal(t, []string{"EOF"}, validationDetails(errors.New("EOF")))
}

func TestValidCost(t *testing.T) {
	neg, pos := decimal.NewFromInt(-1), decimal.RequireFromString("10.50")
	assert.True(t, validCost(nil))
	assert.True(t, validCost(&pos))
	assert.False(t, validCost(&neg))
}
