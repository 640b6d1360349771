package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetric_AbsentIsNotZero(t *testing.T) {
	zero := M(0)
	absent := Absent()

	assert.True(t, zero.Valid)
	assert.Equal(t, 0.0, zero.Value)
	assert.False(t, absent.Valid)
	assert.NotEqual(t, zero, absent)
}

func TestMetric_NormalizesNaNAndInf(t *testing.T) {
	assert.False(t, M(math.NaN()).Valid)
	assert.False(t, M(math.Inf(1)).Valid)
	assert.False(t, M(math.Inf(-1)).Valid)
}

func TestMetric_MarshalAbsentAsNull(t *testing.T) {
	line := StatementLine{
		TotalRevenue: M(1000),
		NetIncome:    Absent(),
	}

	data, err := json.Marshal(line)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_revenue":1000`)
	assert.Contains(t, string(data), `"net_income":null`)
}

func TestMetric_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Metric
	}{
		{"number", `42.5`, M(42.5)},
		{"null", `null`, Absent()},
		{"numeric string stays absent", `"42.5"`, Absent()},
		{"non-numeric string", `"N/A"`, Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Metric
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMetric_RoundTripPreservesAbsent(t *testing.T) {
	original := StatementLine{
		TotalRevenue:       M(500),
		NetIncome:          M(50),
		CurrentLiabilities: Absent(),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored StatementLine
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, original, restored)
}

func TestFiscalPeriod_KeyAndYear(t *testing.T) {
	p := FiscalPeriod{Date: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2023-06-30", p.Key())
	assert.Equal(t, 2023, p.Year())

	q := FiscalPeriod{Date: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	assert.True(t, p.Before(q))
	assert.False(t, q.Before(p))
}

func TestEntity_HasCoreStatements(t *testing.T) {
	e := &Entity{Ticker: "TEST"}
	assert.False(t, e.HasCoreStatements())

	e.IncomeStatements = []StatementRecord{{Date: time.Now()}}
	assert.False(t, e.HasCoreStatements())

	e.BalanceSheets = []StatementRecord{{Date: time.Now()}}
	assert.True(t, e.HasCoreStatements())
}
