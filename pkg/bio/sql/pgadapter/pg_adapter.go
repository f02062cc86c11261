/*
Package pgadapter provides an implementation of the
Adapter interface in the sql package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	biosql "github.com/pbanos/sapling/pkg/bio/sql"
)

// Dialect is the SQL dialect of PostgreSQL databases
var Dialect = biosql.Dialect{
	IDColumn:          "SERIAL PRIMARY KEY",
	FeatureColumnType: "DOUBLE PRECISION",
	LabelColumnType:   "INTEGER",
	Placeholder:       func(n int) string { return fmt.Sprintf("$%d", n) },
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (biosql.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening postgresql database: %w", err)
	}
	return biosql.NewAdapter(db, Dialect), nil
}
