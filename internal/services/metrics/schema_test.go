package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestResponseSchema(t *testing.T) {
	data, err := json.Marshal(ResponseSchema())
	require.NoError(t, err)
	doc := gjson.ParseBytes(data)

	assert.Equal(t, "object", doc.Get("type").String())
	assert.False(t, doc.Get("$schema").Exists())
	assert.False(t, doc.Get("$defs").Exists())
	assert.False(t, doc.Get("required").Exists(), "every field is optional")
	assert.Equal(t, "false", doc.Get("additionalProperties").Raw)

	var keys []string
	doc.Get("properties").ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	assert.Equal(t, []string{"income", "net_income", "emissions", "water_usage", "quarter"}, keys)

	tests := []struct {
		field    string
		wantType string
	}{
		{"income", "integer"},
		{"net_income", "number"},
		{"emissions", "number"},
		{"water_usage", "number"},
		{"quarter", "string"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			prop := doc.Get("properties." + tt.field)
			assert.Equal(t, tt.wantType, prop.Get("anyOf.0.type").String())
			assert.Equal(t, "null", prop.Get("anyOf.1.type").String())
			assert.NotEmpty(t, prop.Get("description").String())
		})
	}

	assert.Equal(t, "0", doc.Get("properties.income.anyOf.0.exclusiveMinimum").Raw)
	assert.Equal(t, "0", doc.Get("properties.emissions.anyOf.0.minimum").Raw)
	assert.Equal(t, "0", doc.Get("properties.water_usage.anyOf.0.minimum").Raw)
}
