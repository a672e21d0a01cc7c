package types

import "fmt"

// ValidationError reports a rejected field value before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a lookup that matched no live row.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ScopeError reports a row that exists but belongs to a different day than
// the one the caller addressed.
type ScopeError struct {
	Resource string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("%s does not belong to the requested day", e.Resource)
}

// ImportanceInUseError blocks deletion of an importance level that live
// targets still reference.
type ImportanceInUseError struct {
	Label string
	Count int64
}

func (e *ImportanceInUseError) Error() string {
	return fmt.Sprintf("importance level %q is referenced by %d active target(s)", e.Label, e.Count)
}
