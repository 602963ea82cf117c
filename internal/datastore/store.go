// Package datastore exports rendered galleries to SQLite or a remote Datasette.
package datastore

// Store is a destination for gallery rows.
type Store interface {
	Connect() error

	// CreateTable runs a CREATE TABLE IF NOT EXISTS statement.
	CreateTable(schema string) error

	// BatchInsert inserts rows into table inside database.
	BatchInsert(database string, table string, records []map[string]any) error

	Close() error
}
