package validation

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingField     ConflictType = "missing_field"
	ConflictInvalidNumber    ConflictType = "invalid_number"
	ConflictOutOfRange       ConflictType = "out_of_range"
	ConflictInvalidUnit      ConflictType = "invalid_unit"
	ConflictInvalidDateRange ConflictType = "invalid_date_range"
	ConflictSelectionOrder   ConflictType = "selection_order"
)

// Conflict is one field-local problem in an exercise, a session or an import record
type Conflict struct {
	Type        ConflictType
	Field       string // JSON field name, dotted for nested fields
	Description string
	Items       []string // exercise or session names involved
}

func (c Conflict) Error() string {
	if c.Field == "" {
		return c.Description
	}
	return fmt.Sprintf("%s: %s", c.Field, c.Description)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Error())
	}
	return b.String()
}

// Err combines every conflict into one error, nil when there are none
func (vr *ValidationResult) Err() error {
	var err error
	for _, c := range vr.Conflicts {
		err = multierr.Append(err, c)
	}
	return err
}

// FieldErrors maps each field to its first conflict description, for inline form errors
func (vr *ValidationResult) FieldErrors() map[string]string {
	out := make(map[string]string, len(vr.Conflicts))
	for _, c := range vr.Conflicts {
		if _, ok := out[c.Field]; !ok {
			out[c.Field] = c.Description
		}
	}
	return out
}

func (vr *ValidationResult) add(t ConflictType, field, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Field:       field,
		Description: fmt.Sprintf(format, args...),
	})
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// Validator validates catalog entries, finished sessions and import records
type Validator struct{}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}
