package sql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	questionMarks = Dialect{
		IDColumn:          "INTEGER PRIMARY KEY AUTOINCREMENT",
		FeatureColumnType: "REAL",
		LabelColumnType:   "INTEGER",
		Placeholder:       func(int) string { return "?" },
	}
	numbered = Dialect{
		IDColumn:          "SERIAL PRIMARY KEY",
		FeatureColumnType: "DOUBLE PRECISION",
		LabelColumnType:   "INTEGER",
		Placeholder:       func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

func TestCreateSampleTableStatement(t *testing.T) {
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS samples("X0" REAL NOT NULL, "X1" REAL NOT NULL, "room" INTEGER NOT NULL, "id" INTEGER PRIMARY KEY AUTOINCREMENT)`,
		CreateSampleTableStatement(questionMarks, []string{"X0", "X1"}, "room"))
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS samples("a" DOUBLE PRECISION NOT NULL, "l" INTEGER NOT NULL, "id" SERIAL PRIMARY KEY)`,
		CreateSampleTableStatement(numbered, []string{"a"}, "l"))
}

func TestInsertSamplesStatement(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO samples ("X0", "room") VALUES (?, ?), (?, ?)`,
		InsertSamplesStatement(questionMarks, []string{"X0", "room"}, 2))
	assert.Equal(t,
		`INSERT INTO samples ("X0", "X1", "room") VALUES ($1, $2, $3), ($4, $5, $6)`,
		InsertSamplesStatement(numbered, []string{"X0", "X1", "room"}, 2))
}

func TestSelectSamplesStatement(t *testing.T) {
	assert.Equal(t,
		`SELECT "X0", "X1", "room" FROM samples ORDER BY "id"`,
		SelectSamplesStatement([]string{"X0", "X1"}, "room"))
}
