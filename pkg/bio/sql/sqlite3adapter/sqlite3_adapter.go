/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sql package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	biosql "github.com/pbanos/sapling/pkg/bio/sql"
)

// Dialect is the SQL dialect of SQLite3 databases
var Dialect = biosql.Dialect{
	IDColumn:          "INTEGER PRIMARY KEY AUTOINCREMENT",
	FeatureColumnType: "REAL",
	LabelColumnType:   "INTEGER",
	Placeholder:       func(int) string { return "?" },
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (biosql.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database %s: %w", path, err)
	}
	// sqlite3 does not allow concurrent writers on a file
	db.SetMaxOpenConns(1)
	return biosql.NewAdapter(db, Dialect), nil
}
