/*
Package mongo provides sets of samples stored on a MongoDB database, on a
samples collection with a document per sample that holds a field per feature
and a field for the label.
*/
package mongo

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pbanos/sapling/pkg/sapling"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	samplesCollectionName = "samples"
	orderField            = "_n"
)

/*
Set is a set of samples stored on a MongoDB database to which samples can be
added and from which samples can be sequentially read, in the order they
were written.
*/
type Set interface {
	Write(context.Context, []sapling.Sample) (int, error)
	Read(context.Context) (<-chan sapling.Sample, <-chan error)
	Count(context.Context) (int, error)
}

type mongoSet struct {
	session  *mgo.Session
	features []string
	label    string
}

/*
Dial takes a MongoDB connection URL and returns a session on it or an
error if the connection cannot be established.
*/
func Dial(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	return session, nil
}

/*
Open takes a context, a MongoDB database session, the names of the features
and the name of the label and returns a Set that works on the default
database for that session or an error if it fails to set it up.
*/
func Open(ctx context.Context, session *mgo.Session, features []string, label string) (Set, error) {
	for _, name := range append(append([]string(nil), features...), label) {
		if err := validFieldName(name); err != nil {
			return nil, err
		}
	}
	ms := &mongoSet{session, features, label}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	err := ms.samplesCollection().EnsureIndex(mgo.Index{Key: []string{orderField}, Background: true})
	if err != nil {
		return nil, fmt.Errorf("ensuring samples index: %w", err)
	}
	return ms, nil
}

func (ms *mongoSet) Count(context.Context) (int, error) {
	return ms.samplesCollection().Count()
}

func (ms *mongoSet) Write(ctx context.Context, samples []sapling.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	offset, err := ms.Count(ctx)
	if err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(samples))
	for i, s := range samples {
		doc, err := SampleDocument(ms.features, ms.label, s)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		doc[orderField] = offset + i
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	err = ms.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

func (ms *mongoSet) Read(ctx context.Context) (<-chan sapling.Sample, <-chan error) {
	samples := make(chan sapling.Sample)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(samples)
		var doc bson.M
		var err error
		iter := ms.samplesCollection().Find(nil).Sort(orderField).Iter()
	loop:
		for iter.Next(&doc) {
			var s sapling.Sample
			s, err = DocumentSample(ms.features, ms.label, doc)
			if err != nil {
				break
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
				break loop
			case samples <- s:
			}
		}
		if cerr := iter.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			errs <- err
		}
	}()
	return samples, errs
}

func (ms *mongoSet) samplesCollection() *mgo.Collection {
	return ms.session.DB("").C(samplesCollectionName)
}

/*
SampleDocument takes the names of the features, the name of the label and a
sample and returns the document representing the sample.
*/
func SampleDocument(features []string, label string, s sapling.Sample) (bson.M, error) {
	if s.FeatureCount() != len(features) {
		return nil, fmt.Errorf("sample has %d features, expected %d", s.FeatureCount(), len(features))
	}
	doc := make(bson.M, len(features)+2)
	for i, f := range features {
		doc[f] = s.Value(i)
	}
	doc[label] = s.Label()
	return doc, nil
}

/*
DocumentSample takes the names of the features, the name of the label and a
document and returns the sample it represents or an error if any field is
missing or holds a value of the wrong type.
*/
func DocumentSample(features []string, label string, doc bson.M) (sapling.Sample, error) {
	values := make([]float64, len(features))
	for i, f := range features {
		v, err := number(doc[f])
		if err != nil {
			return sapling.Sample{}, fmt.Errorf("field %s: %w", f, err)
		}
		values[i] = v
	}
	l, err := number(doc[label])
	if err != nil {
		return sapling.Sample{}, fmt.Errorf("label field %s: %w", label, err)
	}
	if float64(int(l)) != l {
		return sapling.Sample{}, fmt.Errorf("label field %s: %v is not an integer", label, l)
	}
	return sapling.NewSample(values, int(l)), nil
}

func number(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not a finite number", n)
		}
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case nil:
		return 0, fmt.Errorf("missing value")
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func validFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("empty names cannot be used as field names")
	}
	if name == "_id" || name == orderField {
		return fmt.Errorf("invalid feature name %q: reserved collection field", name)
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}
