/*
Package sql provides sets of samples stored on SQL databases. The samples
are kept on a samples table with a column per feature, a column for the
label and an id column that keeps their order.

Database specifics are provided by the adapters in the sqlite3adapter and
pgadapter packages.
*/
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

/*
Adapter is an interface providing the methods
needed to implement a Set with a database backend.
*/
type Adapter interface {
	ColumnName(string) (string, error)

	CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error

	AddSamples(ctx context.Context, rows [][]interface{}, columns []string) (int, error)
	IterateOnSamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, []float64, int) (bool, error)) error
	CountSamples(ctx context.Context) (int, error)

	Close() error
}

/*
Dialect holds what changes between SQL databases for the statements
an adapter runs.
*/
type Dialect struct {
	// IDColumn is the definition of the id column
	IDColumn string
	// FeatureColumnType is the type of the columns holding feature values
	FeatureColumnType string
	// LabelColumnType is the type of the label column
	LabelColumnType string
	// Placeholder returns the placeholder for the n-th (1-based) parameter of a statement
	Placeholder func(n int) string
}

/*
MaxSampleInsertionsPerStatement is the maximum number
of samples that are allowed to be added with a single
insert command with the AddSamples method of the adapter.
Trying to add more will result in making more insertion commands
*/
const MaxSampleInsertionsPerStatement = 50

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes an open database and the Dialect of its SQL and returns an
Adapter that works on it.
*/
func NewAdapter(db *sql.DB, dialect Dialect) Adapter {
	return &adapter{db, dialect}
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	return columnName(featureName)
}

func columnName(featureName string) (string, error) {
	if featureName == "" {
		return "", fmt.Errorf("empty names cannot be used as column names")
	}
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error {
	_, err := a.db.ExecContext(ctx, CreateSampleTableStatement(a.dialect, featureColumns, labelColumn))
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %w", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rows [][]interface{}, columns []string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to store")
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting insertion of %d samples: %w", len(rows), err)
	}
	var added int
	for chunkStart := 0; chunkStart < len(rows); chunkStart += MaxSampleInsertionsPerStatement {
		chunkEnd := chunkStart + MaxSampleInsertionsPerStatement
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		chunk := rows[chunkStart:chunkEnd]
		values := make([]interface{}, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			if len(row) != len(columns) {
				tx.Rollback()
				return 0, fmt.Errorf("sample %d has %d values for %d columns", chunkStart, len(row), len(columns))
			}
			values = append(values, row...)
		}
		_, err = tx.ExecContext(ctx, InsertSamplesStatement(a.dialect, columns, len(chunk)), values...)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting samples %d to %d: %w", chunkStart, chunkEnd, err)
		}
		added += len(chunk)
	}
	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("committing insertion of %d samples: %w", len(rows), err)
	}
	return added, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, []float64, int) (bool, error)) error {
	rows, err := a.db.QueryContext(ctx, SelectSamplesStatement(featureColumns, labelColumn))
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		values := make([]float64, len(featureColumns))
		var label int
		dest := make([]interface{}, 0, len(featureColumns)+1)
		for i := range values {
			dest = append(dest, &values[i])
		}
		dest = append(dest, &label)
		err = rows.Scan(dest...)
		if err != nil {
			return fmt.Errorf("scanning sample %d: %w", j, err)
		}
		ok, err := lambda(j, values, label)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err = rows.Err(); err != nil {
		return err
	}
	return rows.Close()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
