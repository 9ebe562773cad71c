package metrics

import (
	"github.com/invopop/jsonschema"

	"github.com/ternarybob/ledgerline/internal/models"
)

// ResponseSchema reflects models.Metrics into the JSON Schema handed to the model as
// its response constraint. Every property also accepts null.
func ResponseSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
		Anonymous:                  true,
	}

	schema := reflector.Reflect(&models.Metrics{})
	schema.Version = ""
	schema.ID = ""
	schema.Title = "Metrics"

	var names []string
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	for _, name := range names {
		prop, _ := schema.Properties.Get(name)
		schema.Properties.Set(name, nullable(prop))
	}

	return schema
}

// nullable wraps prop so that null is accepted alongside its declared type.
// Title and description stay on the outer schema.
func nullable(prop *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       prop.Title,
		Description: prop.Description,
		AnyOf: []*jsonschema.Schema{
			{
				Type:             prop.Type,
				Minimum:          prop.Minimum,
				ExclusiveMinimum: prop.ExclusiveMinimum,
			},
			{Type: "null"},
		},
	}
}
