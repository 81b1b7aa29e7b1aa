package domain

import (
	"fmt"
	"strings"
)

// SchemaMismatchError reports a RawTable whose header lacks the Year column
// or one of the twelve month columns. Processing for that region aborts; no
// partial output is produced.
type SchemaMismatchError struct {
	Region  Region
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch for region %s: missing columns %s",
		e.Region, strings.Join(e.Missing, ", "))
}

// RetrievalError reports a failure of the external data-retrieval
// collaborator for one region. It is surfaced, never swallowed.
type RetrievalError struct {
	Region Region
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve region %s: %v", e.Region, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
