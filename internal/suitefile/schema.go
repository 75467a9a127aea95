package suitefile

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

// validateSchema unifies a decoded suite-file document with the
// embedded CUE schema. Returns an error describing the first
// violation, including CUE's positional diagnostics when available.
func validateSchema(raw any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile suite schema: %w", err)
	}

	data := ctx.Encode(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("failed to encode suite file for validation: %w", err)
	}

	unified := schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("suite file does not match schema: %w", err)
	}
	return nil
}
