package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Metrics holds the financial and environmental figures extracted from free text.
// Every field is optional; a nil pointer means the value was not stated.
type Metrics struct {
	Income     *int64   `json:"income" yaml:"income" validate:"omitempty,gt=0" jsonschema:"title=Income,description=The total income reported in the text,exclusiveMinimum=0"`
	NetIncome  *float64 `json:"net_income" yaml:"net_income" jsonschema:"title=Net Income,description=The net gain or loss; negative for a net loss"`
	Emissions  *float64 `json:"emissions" yaml:"emissions" validate:"omitempty,gte=0" jsonschema:"title=Emissions,description=The Scope 1 and Scope 2 emissions in metric tons,minimum=0"`
	WaterUsage *float64 `json:"water_usage" yaml:"water_usage" validate:"omitempty,gte=0" jsonschema:"title=Water Usage,description=The water usage in liters,minimum=0"`
	Quarter    *string  `json:"quarter" yaml:"quarter" jsonschema:"title=Quarter,description=The quarter for which the metrics are recorded"`
}

// Validate checks the metrics against their field constraints.
func (m *Metrics) Validate() error {
	return validate.Struct(m)
}

// ErrMetricsShape is returned by ParseMetrics when the text is not a metrics object.
var ErrMetricsShape = errors.New("response does not match the metrics schema")

// metricsPayload is the lenient wire shape used while parsing model output.
// Income is kept as the literal number so large values parse without loss;
// it may carry a trailing ".0".
type metricsPayload struct {
	Income     *json.RawMessage `json:"income"`
	NetIncome  *float64         `json:"net_income"`
	Emissions  *float64         `json:"emissions"`
	WaterUsage *float64         `json:"water_usage"`
	Quarter    *string          `json:"quarter"`
}

// ParseMetrics parses and validates model output text as a Metrics record.
// The text must be exactly one JSON object. Numbers must be JSON numbers, income
// must be a whole positive number and unknown keys are ignored.
func ParseMetrics(text string) (*Metrics, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMetricsShape)
	}

	var payload *metricsPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetricsShape, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMetricsShape)
	}

	m := &Metrics{
		NetIncome:  payload.NetIncome,
		Emissions:  payload.Emissions,
		WaterUsage: payload.WaterUsage,
		Quarter:    payload.Quarter,
	}

	if payload.Income != nil {
		income, err := parseIncome(*payload.Income)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMetricsShape, err)
		}
		m.Income = &income
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetricsShape, err)
	}

	return m, nil
}

// parseIncome reads a raw JSON number as an int64, accepting float spellings
// such as 12500000.0 or 1.25e7 when they hold a whole value in range.
func parseIncome(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, fmt.Errorf("income must be a JSON number, got %s", raw)
	}
	n := json.Number(raw)
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	v, err := n.Float64()
	if err != nil || v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("income must be a whole number, got %s", n)
	}
	return int64(v), nil
}
