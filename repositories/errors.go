package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a row addressed by ID or key does not exist.
var ErrNotFound = errors.New("record not found")

// ConstraintKind identifies which database constraint rejected a write.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
)

// ConstraintError is a write rejected by a UNIQUE or FOREIGN KEY constraint.
// Fields lists the API field names covered by the constraint.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string
	Fields     []string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint %q violated on (%s)", e.Kind, e.Constraint, strings.Join(e.Fields, ", "))
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// AsConstraintError returns the ConstraintError in err's chain, if any.
func AsConstraintError(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
