package scheduler

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const campaignsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "product":     {"type": "string"},
      "domain":      {"type": "string"},
      "audience":    {"type": "string"},
      "platforms":   {"type": "array", "items": {"type": "string"}},
      "country":     {"type": "string", "pattern": "^[A-Za-z]{2}$"},
      "recent_days": {"type": "integer", "minimum": 1},
      "num_results": {"type": "integer", "minimum": 1}
    },
    "anyOf": [
      {"required": ["domain"]},
      {"required": ["product"]}
    ]
  }
}`

func validateCampaigns(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(campaignsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("campaigns validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
