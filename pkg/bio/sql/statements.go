package sql

import (
	"bytes"
	"fmt"
	"strings"
)

/*
CreateSampleTableStatement returns the statement creating the samples
table, if it does not exist, with the given feature and label columns.
*/
func CreateSampleTableStatement(d Dialect, featureColumns []string, labelColumn string) string {
	var buf bytes.Buffer
	buf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range featureColumns {
		buf.WriteString(fmt.Sprintf(`"%s" %s NOT NULL, `, c, d.FeatureColumnType))
	}
	buf.WriteString(fmt.Sprintf(`"%s" %s NOT NULL, `, labelColumn, d.LabelColumnType))
	buf.WriteString(fmt.Sprintf(`"id" %s)`, d.IDColumn))
	return buf.String()
}

/*
InsertSamplesStatement returns the statement inserting the given number of
rows of values for the columns on the samples table.
*/
func InsertSamplesStatement(d Dialect, columns []string, rows int) string {
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO samples ("`)
	buf.WriteString(strings.Join(columns, `", "`))
	buf.WriteString(`") VALUES `)
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for c := range columns {
			if c > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(d.Placeholder(n))
			n++
		}
		buf.WriteString(")")
	}
	return buf.String()
}

/*
SelectSamplesStatement returns the query for the feature and label columns
of every sample in the order they were inserted.
*/
func SelectSamplesStatement(featureColumns []string, labelColumn string) string {
	columns := append(append([]string(nil), featureColumns...), labelColumn)
	return fmt.Sprintf(`SELECT "%s" FROM samples ORDER BY "id"`, strings.Join(columns, `", "`))
}
