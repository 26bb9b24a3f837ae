package persist

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema is the JSON schema of snapshots written by JSONCodec.
//
//go:embed snapshot-schema.json
var snapshotSchema []byte

// ErrInvalidSnapshot is returned when a document violates the snapshot schema.
var ErrInvalidSnapshot = errors.New("persist: invalid snapshot")

// SnapshotSchema returns the JSON schema snapshots are validated against.
func SnapshotSchema() []byte {
	return snapshotSchema
}

// ValidateSnapshot checks a JSON document against the snapshot schema.
// It returns the detailed result and, when the document is invalid, an
// error wrapping ErrInvalidSnapshot.
func ValidateSnapshot(data []byte) (*gojsonschema.Result, error) {
	schemaLoader := gojsonschema.NewBytesLoader(snapshotSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate snapshot: %w", err)
	}

	if !result.Valid() {
		return result, fmt.Errorf("%w: %d violation(s)", ErrInvalidSnapshot, len(result.Errors()))
	}

	return result, nil
}
