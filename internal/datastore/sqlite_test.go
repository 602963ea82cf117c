package datastore

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore_CreateTableAndInsert(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	schema := `CREATE TABLE IF NOT EXISTS test_table (
		id INTEGER PRIMARY KEY,
		name TEXT,
		"order" INTEGER
	)`
	if err := store.CreateTable(schema); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	records := []map[string]any{
		{"id": 1, "name": "foo", "order": 42},
		{"id": 2, "name": "bar", "order": 99},
	}
	if err := store.BatchInsert(DatabaseName, "test_table", records); err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	rows, err := store.db.Query(`SELECT id, name, "order" FROM test_table ORDER BY id`)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var id, order int
		var name string
		if err := rows.Scan(&id, &name, &order); err != nil {
			t.Fatalf("failed to scan: %v", err)
		}
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "foo" || names[1] != "bar" {
		t.Errorf("unexpected rows: %v", names)
	}
}

func TestSQLiteStore_EmptyInsertIsNoop(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.BatchInsert(DatabaseName, "missing", nil); err != nil {
		t.Fatalf("expected nil error for empty insert, got %v", err)
	}
}

func TestSQLiteStore_RequiresConnect(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.CreateTable("CREATE TABLE x (id INTEGER)"); err == nil {
		t.Fatal("expected error before Connect")
	}
	if err := store.BatchInsert(DatabaseName, "x", []map[string]any{{"id": 1}}); err == nil {
		t.Fatal("expected error before Connect")
	}
}

func TestInsertStatementQuotesIdentifiers(t *testing.T) {
	got := insertStatement("gallery_movies", []string{"genre", `we"ird`})
	want := `INSERT INTO "gallery_movies" ("genre", "we""ird") VALUES (?, ?)`
	if got != want {
		t.Errorf("insertStatement() = %q, want %q", got, want)
	}
}
