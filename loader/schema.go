package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaBase = "https://github.com/reallyoldfogie/mc-voxelshape/loader/schemas/"

var (
	//go:embed schemas/model.schema.json
	modelSchemaText string
	//go:embed schemas/blockstate.schema.json
	blockstateSchemaText string

	modelSchema      = jsonschema.MustCompileString(schemaBase+"model.schema.json", modelSchemaText)
	blockstateSchema = jsonschema.MustCompileString(schemaBase+"blockstate.schema.json", blockstateSchemaText)
)

// decodeValidated checks data against schema before decoding it into v.
// The schemas only check structure; vector lengths and axis names are
// left to the geometry code so they fail with its errors.
func decodeValidated(schema *jsonschema.Schema, data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
