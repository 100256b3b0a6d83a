package domain

import (
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestValidateFullPayload(t *testing.T) {
	longTitle := strings.Repeat("x", 101)
	longDescription := strings.Repeat("y", 501)

	cases := []struct {
		name    string
		payload TaskPayload
		partial bool
		want    []string
	}{
		{
			name:    "valid minimal",
			payload: TaskPayload{Title: strPtr("Buy milk")},
		},
		{
			name:    "valid full",
			payload: TaskPayload{Title: strPtr("Buy milk"), Description: strPtr("two liters"), DueDateCamel: strPtr("2025-07-10")},
		},
		{
			name:    "missing title",
			payload: TaskPayload{Description: strPtr("no title here")},
			want:    []string{"Title is required"},
		},
		{
			name:    "blank title",
			payload: TaskPayload{Title: strPtr("   ")},
			want:    []string{"Title is required"},
		},
		{
			name:    "title too long",
			payload: TaskPayload{Title: strPtr(longTitle)},
			want:    []string{"Title must be 100 characters or less"},
		},
		{
			name:    "title exactly at limit",
			payload: TaskPayload{Title: strPtr(strings.Repeat("x", 100))},
		},
		{
			name:    "description too long",
			payload: TaskPayload{Title: strPtr("ok"), Description: strPtr(longDescription)},
			want:    []string{"Description must be 500 characters or less"},
		},
		{
			name:    "bad due date",
			payload: TaskPayload{Title: strPtr("ok"), DueDateCamel: strPtr("07/10/2025")},
			want:    []string{"Due date must be in YYYY-MM-DD format"},
		},
		{
			name:    "snake case due date accepted",
			payload: TaskPayload{Title: strPtr("ok"), DueDateSnake: strPtr("2025-07-10")},
		},
		{
			name:    "snake case due date validated",
			payload: TaskPayload{Title: strPtr("ok"), DueDateSnake: strPtr("tomorrow")},
			want:    []string{"Due date must be in YYYY-MM-DD format"},
		},
		{
			name:    "all violations collected in order",
			payload: TaskPayload{Title: strPtr(longTitle), Description: strPtr(longDescription), DueDateCamel: strPtr("soon")},
			want: []string{
				"Title must be 100 characters or less",
				"Description must be 500 characters or less",
				"Due date must be in YYYY-MM-DD format",
			},
		},
		{
			name:    "partial skips absent title",
			payload: TaskPayload{IsDone: boolPtr(true)},
			partial: true,
		},
		{
			name:    "partial still rejects blank title",
			payload: TaskPayload{Title: strPtr(" ")},
			partial: true,
			want:    []string{"Title is required"},
		},
		{
			name:    "multibyte title counted in characters",
			payload: TaskPayload{Title: strPtr(strings.Repeat("я", 100))},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.payload.Validate(tc.partial)
			if len(tc.want) == 0 {
				if len(got) != 0 {
					t.Fatalf("expected valid payload, got violations %v", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected violations: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDueDateSpellingPrecedence(t *testing.T) {
	p := TaskPayload{DueDateCamel: strPtr("2025-01-02"), DueDateSnake: strPtr("2025-03-04")}
	if got := p.DueDate(); got == nil || *got != "2025-01-02" {
		t.Fatalf("expected camelCase spelling to win, got %v", got)
	}

	p = TaskPayload{DueDateCamel: strPtr(""), DueDateSnake: strPtr("2025-03-04")}
	if got := p.DueDate(); got == nil || *got != "2025-03-04" {
		t.Fatalf("expected empty camelCase value to fall through, got %v", got)
	}

	p = TaskPayload{}
	if got := p.DueDate(); got != nil {
		t.Fatalf("expected nil due date, got %q", *got)
	}
}

func boolPtr(b bool) *bool { return &b }
