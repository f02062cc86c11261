package bio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/sapling/pkg/sapling"
)

/*
ReadCSVSet takes an io.Reader for a CSV stream, the Metadata of the set
(that may be nil) and a SetGenerator and returns the sapling.Set built with
the SetGenerator and the samples parsed from the reader or an error.

The first row of the CSV content is taken as a header if any of its fields
is not a number. With a header and features declared on the metadata,
columns are matched to features and label by name, so their order does not
matter. Otherwise columns are read in order: feature values first and the
integer label last.
*/
func ReadCSVSet(reader io.Reader, md *Metadata, sg SetGenerator) (sapling.Set, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	first, err := r.Read()
	if err == io.EOF {
		return sg.orDefault()(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading first row: %w", err)
	}
	// every row must have as many columns as the first one
	r.FieldsPerRecord = len(first)
	samples := []sapling.Sample{}
	var order []int
	if isHeader(first) {
		order, err = columnOrder(first, md)
		if err != nil {
			return nil, fmt.Errorf("parsing header: %w", err)
		}
	} else {
		order, err = positionalOrder(len(first), md)
		if err != nil {
			return nil, fmt.Errorf("parsing line 1: %w", err)
		}
		sample, err := parseSample(first)
		if err != nil {
			return nil, fmt.Errorf("parsing line 1: %w", err)
		}
		samples = append(samples, sample)
	}
	fields := make([]string, len(order))
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		for i, c := range order {
			fields[i] = row[c]
		}
		sample, err := parseSample(fields)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", line, err)
		}
		samples = append(samples, sample)
	}
	return sg.orDefault()(samples), nil
}

/*
ReadCSVSetFromFilePath takes a filepath string, the Metadata of the set and a
SetGenerator, opens the file to which the filepath points to and uses
ReadCSVSet to return a sapling.Set or an error read from it. An empty
filepath reads from STDIN.
*/
func ReadCSVSetFromFilePath(filepath string, md *Metadata, sg SetGenerator) (sapling.Set, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading set: %w", err)
		}
		defer f.Close()
	}
	set, err := ReadCSVSet(f, md, sg)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return set, err
}

/*
WriteCSVSet takes an io.Writer, a set and its Metadata (that may be nil) and
writes the set as CSV onto the writer: a header with the names of the
features and the label followed by a row per sample.
*/
func WriteCSVSet(w io.Writer, s sapling.Set, md *Metadata) error {
	samples := s.Samples()
	n := md.FeatureCount()
	if len(samples) > 0 {
		n = samples[0].FeatureCount()
	}
	names := md.FeatureNames(n)
	if len(names) != n {
		return fmt.Errorf("metadata declares %d features but samples have %d", len(names), n)
	}
	cw := csv.NewWriter(w)
	header := append(append([]string(nil), names...), md.LabelName())
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := make([]string, n+1)
	for i, sample := range samples {
		if sample.FeatureCount() != n {
			return fmt.Errorf("sample %d has %d features instead of %d", i, sample.FeatureCount(), n)
		}
		for f := 0; f < n; f++ {
			row[f] = strconv.FormatFloat(sample.Value(f), 'g', -1, 64)
		}
		row[n] = strconv.Itoa(sample.Label())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing sample %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func isHeader(row []string) bool {
	for _, v := range row {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return true
		}
	}
	return false
}

// columnOrder returns the column indexes of the features followed by the label's.
func columnOrder(header []string, md *Metadata) ([]int, error) {
	if md == nil || len(md.Features) == 0 {
		return positionalOrder(len(header), md)
	}
	columns := make(map[string]int)
	for i, name := range header {
		if _, ok := columns[name]; ok {
			return nil, fmt.Errorf("column %q appears more than once", name)
		}
		columns[name] = i
	}
	names := append(append([]string(nil), md.Features...), md.LabelName())
	order := make([]int, len(names))
	for i, name := range names {
		c, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		order[i] = c
	}
	return order, nil
}

func positionalOrder(columns int, md *Metadata) ([]int, error) {
	if columns < 2 {
		return nil, fmt.Errorf("expected at least one feature and the label, got %d columns", columns)
	}
	if md != nil && len(md.Features) > 0 && columns != len(md.Features)+1 {
		return nil, fmt.Errorf("expected %d columns, got %d", len(md.Features)+1, columns)
	}
	order := make([]int, columns)
	for i := range order {
		order[i] = i
	}
	return order, nil
}
