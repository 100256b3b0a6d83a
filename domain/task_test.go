package domain

import "testing"

func TestTaskUpdateApplyPartial(t *testing.T) {
	due := "2025-07-10"
	task := Task{ID: 7, Title: "Original", Description: "Keep me", DueDate: &due}

	done := true
	TaskUpdate{IsDone: &done}.Apply(&task)

	if task.Title != "Original" || task.Description != "Keep me" {
		t.Fatalf("text fields changed: %+v", task)
	}
	if task.DueDate == nil || *task.DueDate != due {
		t.Fatalf("due date changed: %v", task.DueDate)
	}
	if !task.IsDone {
		t.Fatal("is_done not applied")
	}
}

func TestTaskUpdateApplyAllFields(t *testing.T) {
	task := Task{ID: 1, Title: "Old", Description: "old", IsDone: true}

	title := "New"
	desc := "new description"
	due := "2026-01-01"
	done := false
	TaskUpdate{Title: &title, Description: &desc, DueDate: &due, IsDone: &done}.Apply(&task)

	if task.Title != title || task.Description != desc || task.IsDone {
		t.Fatalf("unexpected task after update: %+v", task)
	}
	if task.DueDate == nil || *task.DueDate != due {
		t.Fatalf("unexpected due date: %v", task.DueDate)
	}
}

func TestTaskUpdateClearsDueDate(t *testing.T) {
	due := "2025-07-10"
	task := Task{ID: 2, Title: "Keep", DueDate: &due}

	empty := ""
	TaskUpdate{DueDate: &empty}.Apply(&task)

	if task.DueDate != nil {
		t.Fatalf("expected due date cleared, got %q", *task.DueDate)
	}
}

func TestTaskUpdateEmpty(t *testing.T) {
	if !(TaskUpdate{}).Empty() {
		t.Fatal("zero update should be empty")
	}
	title := "x"
	if (TaskUpdate{Title: &title}).Empty() {
		t.Fatal("update with a field should not be empty")
	}
}
