// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the size of a user CUE file.
const DefaultMaxFileSize int64 = 1 << 20

// ValidateAgainst compiles data, unifies it with the definition (for
// example "#Config") of schema and validates the result. Fields need not be
// concrete, so optional schema fields may stay unset.
func ValidateAgainst(schema, data []byte, definition, filename string) (cue.Value, error) {
	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: compiling schema: %w", err)
	}
	root := schemaValue.LookupPath(cue.ParsePath(definition))
	if err := root.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", definition, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if err := userValue.Err(); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}
	return unified, nil
}

// DecodeMap validates data like ValidateAgainst and decodes it into a map.
func DecodeMap(schema, data []byte, definition, filename string) (map[string]any, error) {
	unified, err := ValidateAgainst(schema, data, definition, filename)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return out, nil
}
