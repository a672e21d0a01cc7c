package services

import (
	"strings"

	"github.com/yungbote/betterday-backend/internal/types"
)

const (
	maxNameLength       = 200
	maxImportanceWeight = 999999
)

// cleanName trims and validates a user-supplied name field. Names are
// required and capped at the storage column width.
func cleanName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &types.ValidationError{Field: field, Message: "must not be empty"}
	}
	if len(value) > maxNameLength {
		return "", &types.ValidationError{Field: field, Message: "must be at most 200 characters"}
	}
	return value, nil
}

func validateImportanceScore(score int) error {
	if score < 1 {
		return &types.ValidationError{Field: "score", Message: "must be at least 1"}
	}
	if score > maxImportanceWeight {
		return &types.ValidationError{Field: "score", Message: "must be at most 999999"}
	}
	return nil
}
