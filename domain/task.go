package domain

// Task represents a single to-do item as stored and served.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	IsDone      bool    `json:"is_done"`
}

// TaskUpdate carries a partial update. Nil fields are left untouched; a
// DueDate pointing at an empty string clears the due date.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	IsDone      *bool
}

// Apply mutates only the fields the update supplies.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.DueDate != nil {
		if *u.DueDate == "" {
			t.DueDate = nil
		} else {
			due := *u.DueDate
			t.DueDate = &due
		}
	}
	if u.IsDone != nil {
		t.IsDone = *u.IsDone
	}
}

// Empty reports whether the update carries no fields at all.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil && u.IsDone == nil
}
