package sql

import (
	"context"
	"fmt"
	"math"

	"github.com/pbanos/sapling/pkg/sapling"
)

/*
Set is a set of samples stored on a database to which samples can be
added and from which samples can be sequentially read.

Its Write method takes a context and a slice of samples and adds them
to the set, returning the number of samples added and an error if any
occurs.

Its Read method takes a context and returns a channel on which the samples
of the set are sent in the order they were written, and a channel on which
an error is sent if reading fails. Both channels are closed when reading
ends.
*/
type Set interface {
	Write(context.Context, []sapling.Sample) (int, error)
	Read(context.Context) (<-chan sapling.Sample, <-chan error)
	Count(context.Context) (int, error)
}

type sqlSet struct {
	db             Adapter
	featureColumns []string
	labelColumn    string
}

/*
OpenSet takes a context, an Adapter to a db backend, the names of the
features and the name of the label and returns a Set backed by the given
adapter or an error if no set is available through the given adapter.

This function expects the adapter to have the samples table already
created.
*/
func OpenSet(ctx context.Context, dbAdapter Adapter, features []string, label string) (Set, error) {
	ss, err := newSQLSet(dbAdapter, features, label)
	if err != nil {
		return nil, err
	}
	_, err = ss.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening set: %w", err)
	}
	return ss, nil
}

/*
CreateSet takes a context, an Adapter, the names of the features and the name
of the label and returns a Set backed by the given adapter or an error.

This function will ensure that the samples table is created on the
database.
*/
func CreateSet(ctx context.Context, dbAdapter Adapter, features []string, label string) (Set, error) {
	ss, err := newSQLSet(dbAdapter, features, label)
	if err != nil {
		return nil, err
	}
	err = ss.db.CreateSampleTable(ctx, ss.featureColumns, ss.labelColumn)
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func newSQLSet(dbAdapter Adapter, features []string, label string) (*sqlSet, error) {
	ss := &sqlSet{db: dbAdapter}
	seen := make(map[string]string)
	for _, name := range append(append([]string(nil), features...), label) {
		column, err := dbAdapter.ColumnName(name)
		if err != nil {
			return nil, fmt.Errorf("invalid column %s: %w", name, err)
		}
		if other, ok := seen[column]; ok {
			return nil, fmt.Errorf("%s and %s translate to the same column name %s", name, other, column)
		}
		seen[column] = name
		ss.featureColumns = append(ss.featureColumns, column)
	}
	ss.labelColumn = ss.featureColumns[len(ss.featureColumns)-1]
	ss.featureColumns = ss.featureColumns[:len(ss.featureColumns)-1]
	return ss, nil
}

func (ss *sqlSet) Count(ctx context.Context) (int, error) {
	return ss.db.CountSamples(ctx)
}

func (ss *sqlSet) Write(ctx context.Context, samples []sapling.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	rows := make([][]interface{}, 0, len(samples))
	for i, s := range samples {
		if s.FeatureCount() != len(ss.featureColumns) {
			return 0, fmt.Errorf("sample %d has %d features, expected %d", i, s.FeatureCount(), len(ss.featureColumns))
		}
		row := make([]interface{}, 0, len(ss.featureColumns)+1)
		for _, v := range s.Values() {
			row = append(row, v)
		}
		rows = append(rows, append(row, s.Label()))
	}
	columns := append(append([]string(nil), ss.featureColumns...), ss.labelColumn)
	return ss.db.AddSamples(ctx, rows, columns)
}

func (ss *sqlSet) Read(ctx context.Context) (<-chan sapling.Sample, <-chan error) {
	sampleStream := make(chan sapling.Sample)
	errStream := make(chan error, 1)
	go func() {
		defer close(errStream)
		defer close(sampleStream)
		err := ss.db.IterateOnSamples(ctx, ss.featureColumns, ss.labelColumn, func(i int, values []float64, label int) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			for f, v := range values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return false, fmt.Errorf("sample %d: value %v of %s is not a finite number", i, v, ss.featureColumns[f])
				}
			}
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case sampleStream <- sapling.NewSample(values, label):
			}
			return true, nil
		})
		if err != nil {
			errStream <- err
		}
	}()
	return sampleStream, errStream
}

/*
ReadAll takes a context and a Set and returns all the samples read from the
set or an error.
*/
func ReadAll(ctx context.Context, s Set) ([]sapling.Sample, error) {
	var samples []sapling.Sample
	sampleStream, errStream := s.Read(ctx)
	for sample := range sampleStream {
		samples = append(samples, sample)
	}
	if err := <-errStream; err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	return samples, nil
}
