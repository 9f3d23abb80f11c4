package database

import (
	"os"
	"testing"
)

func TestNew_SQLitePath(t *testing.T) {
	tmpFile := "test_database.db"
	defer os.Remove(tmpFile)

	db, err := New(tmpFile)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestInitialize_CreatesTables(t *testing.T) {
	tmpFile := "test_database_init.db"
	defer os.Remove(tmpFile)

	db, err := New(tmpFile)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	// Idempotent.
	if err := db.Initialize(); err != nil {
		t.Fatalf("Second Initialize failed: %v", err)
	}

	for _, table := range []string{"clienti", "anamnesi", "misurazioni", "programmi"} {
		if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}
}
