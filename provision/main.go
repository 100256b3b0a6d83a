package main

import (
	"context"
	"errors"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"tasktrack-api/domain"
	"tasktrack-api/storage"
)

// seedTasks is the fixture set installed by -reset. It covers done and
// pending tasks, past and future due dates, and titles spread across the
// alphabet so list ordering is easy to eyeball.
var seedTasks = []domain.Task{
	{Title: "Welcome Task", Description: "This is a sample task to get you started!", DueDate: due("2025-07-10")},
	{Title: "Completed Example", Description: "This task shows how completed tasks look", DueDate: due("2025-07-05"), IsDone: true},
	{Title: "Overdue Example", Description: "This task demonstrates overdue status", DueDate: due("2025-07-01")},
	{Title: "Alpha Task", Description: "First in alphabetical order", DueDate: due("2025-07-15")},
	{Title: "Zebra Task", Description: "Last in alphabetical order", DueDate: due("2025-07-08"), IsDone: true},
	{Title: "Beta Project", Description: "Second in alphabetical order", DueDate: due("2025-07-20")},
	{Title: "Urgent Meeting", Description: "Very important meeting today", DueDate: due("2025-07-07")},
	{Title: "Done Shopping", Description: "Already bought groceries", DueDate: due("2025-07-06"), IsDone: true},
}

func due(s string) *string {
	return &s
}

func main() {
	dbPath := flag.String("db", "tasks.db", "path to the SQLite database file")
	create := flag.Bool("create", false, "create the database schema if it does not exist")
	reset := flag.Bool("reset", false, "drop all data and reinstall the sample tasks")
	remove := flag.Bool("delete", false, "delete the database file")
	yes := flag.Bool("yes", false, "confirm destructive operations")
	flag.Parse()

	log.SetFormatter(&log.JSONFormatter{})

	selected := 0
	for _, on := range []bool{*create, *reset, *remove} {
		if on {
			selected++
		}
	}
	if selected != 1 {
		flag.Usage()
		log.Fatal("exactly one of -create, -reset or -delete is required")
	}

	switch {
	case *create:
		createSchema(*dbPath)
	case *reset:
		if !*yes {
			log.Fatal("-reset destroys all existing data; rerun with -yes to confirm")
		}
		resetDatabase(*dbPath)
	case *remove:
		if !*yes {
			log.Fatal("-delete cannot be undone; rerun with -yes to confirm")
		}
		deleteDatabase(*dbPath)
	}
}

func createSchema(path string) {
	store, err := storage.New(path)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("schema: %v", err)
	}
	log.WithField("db", path).Info("database initialized")
}

func resetDatabase(path string) {
	store, err := storage.New(path)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	if err := store.DropAndRecreate(context.Background(), seedTasks); err != nil {
		log.Fatalf("reset: %v", err)
	}
	log.WithFields(log.Fields{"db": path, "tasks": len(seedTasks)}).Info("database reset with sample tasks")
}

func deleteDatabase(path string) {
	switch err := storage.DeleteFile(path); {
	case errors.Is(err, os.ErrNotExist):
		log.WithField("db", path).Info("database file does not exist, nothing to delete")
	case err != nil:
		log.Fatalf("delete: %v", err)
	default:
		log.WithField("db", path).Info("database file deleted")
	}
}
