package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TaskPayload carries client-supplied task fields before validation. Nil
// fields were absent from the request. The due date is accepted under both
// the camelCase and snake_case spellings clients use.
type TaskPayload struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDateCamel *string `json:"dueDate"`
	DueDateSnake *string `json:"due_date"`
	IsDone       *bool   `json:"is_done"`
}

// DueDate resolves the two accepted due date spellings. A non-empty camelCase
// value wins, otherwise the snake_case one is used.
func (p TaskPayload) DueDate() *string {
	if p.DueDateCamel != nil && *p.DueDateCamel != "" {
		return p.DueDateCamel
	}
	return p.DueDateSnake
}

// Validate checks the payload against the field rules and returns every
// violation message in rule order; an empty result means the payload is
// valid. In partial mode (updates) absent fields are skipped, while in full
// mode (creation) a missing title counts as empty. Rules are independent:
// all violations are collected, never short-circuited.
func (p TaskPayload) Validate(partial bool) []string {
	var violations []string

	if p.Title != nil || !partial {
		title := ""
		if p.Title != nil {
			title = strings.TrimSpace(*p.Title)
		}
		if title == "" {
			violations = append(violations, "Title is required")
		} else if utf8.RuneCountInString(title) > maxTitleLen {
			violations = append(violations, "Title must be 100 characters or less")
		}
	}

	if p.Description != nil {
		if utf8.RuneCountInString(strings.TrimSpace(*p.Description)) > maxDescriptionLen {
			violations = append(violations, "Description must be 500 characters or less")
		}
	}

	if due := p.DueDate(); due != nil && *due != "" && !dueDatePattern.MatchString(*due) {
		violations = append(violations, "Due date must be in YYYY-MM-DD format")
	}

	return violations
}
