package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMetrics_RoundTrip(t *testing.T) {
	original := Metrics{
		Income:     ptr(int64(12500000)),
		NetIncome:  ptr(-300000.125),
		Emissions:  ptr(450.3333333333333),
		WaterUsage: ptr(0.1 + 0.2),
		Quarter:    ptr("Q4 2024"),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	parsed, err := ParseMetrics(string(data))
	require.NoError(t, err)
	assert.Equal(t, original, *parsed)
}

func TestMetrics_RoundTripKeepsNulls(t *testing.T) {
	original := Metrics{Quarter: ptr("Q1")}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"income":null,"net_income":null,"emissions":null,"water_usage":null,"quarter":"Q1"}`, string(data))

	parsed, err := ParseMetrics(string(data))
	require.NoError(t, err)
	assert.Equal(t, original, *parsed)
}

func TestParseMetrics_Accepts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Metrics
	}{
		{
			name: "scenario record",
			text: `{"income":12500000,"net_income":-300000,"emissions":450,"water_usage":null,"quarter":"Q4 2024"}`,
			want: Metrics{Income: ptr(int64(12500000)), NetIncome: ptr(-300000.0), Emissions: ptr(450.0), Quarter: ptr("Q4 2024")},
		},
		{
			name: "all null",
			text: `{"income":null,"net_income":null,"emissions":null,"water_usage":null,"quarter":null}`,
			want: Metrics{},
		},
		{
			name: "empty object",
			text: `{}`,
			want: Metrics{},
		},
		{
			name: "whole float income",
			text: `{"income":12500000.0}`,
			want: Metrics{Income: ptr(int64(12500000))},
		},
		{
			name: "income beyond float precision",
			text: `{"income":9007199254740993}`,
			want: Metrics{Income: ptr(int64(9007199254740993))},
		},
		{
			name: "exponent income",
			text: `{"income":1.25e7}`,
			want: Metrics{Income: ptr(int64(12500000))},
		},
		{
			name: "surrounding whitespace and unknown keys",
			text: "\n  {\"income\": 5, \"currency\": \"EUR\"}\n",
			want: Metrics{Income: ptr(int64(5))},
		},
		{
			name: "zero emissions and water",
			text: `{"emissions":0,"water_usage":0}`,
			want: Metrics{Emissions: ptr(0.0), WaterUsage: ptr(0.0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetrics(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseMetrics_Rejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"not json", "income is 12.5M"},
		{"code fence", "```json\n{\"income\":1}\n```"},
		{"null", "null"},
		{"array", `[{"income":1}]`},
		{"string number", `{"income":"12500000"}`},
		{"boolean income", `{"income":true}`},
		{"fractional income", `{"income":12.5}`},
		{"income out of range", `{"income":1e19}`},
		{"zero income", `{"income":0}`},
		{"negative income", `{"income":-1}`},
		{"negative emissions", `{"emissions":-0.5}`},
		{"negative water usage", `{"water_usage":-10}`},
		{"numeric quarter", `{"quarter":4}`},
		{"trailing data", `{"income":1} {"income":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetrics(tt.text)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrMetricsShape)
		})
	}
}
