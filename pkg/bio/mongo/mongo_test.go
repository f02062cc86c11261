package mongo

import (
	"context"
	"math"
	"testing"

	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func TestSampleDocumentRoundTrip(t *testing.T) {
	features := []string{"X0", "X1"}
	s := sapling.NewSample([]float64{-64.5, 3}, 2)
	doc, err := SampleDocument(features, "room", s)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"X0": -64.5, "X1": 3.0, "room": 2}, doc)
	got, err := DocumentSample(features, "room", doc)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = SampleDocument([]string{"X0"}, "room", s)
	assert.Error(t, err)
}

func TestDocumentSampleAcceptsIntegerFields(t *testing.T) {
	got, err := DocumentSample([]string{"a"}, "l", bson.M{"a": int64(4), "l": 1.0, "_id": bson.NewObjectId()})
	require.NoError(t, err)
	assert.Equal(t, sapling.NewSample([]float64{4}, 1), got)
}

func TestDocumentSampleErrors(t *testing.T) {
	for _, doc := range []bson.M{
		{"l": 1},
		{"a": "x", "l": 1},
		{"a": 1.0},
		{"a": 1.0, "l": 1.5},
		{"a": math.NaN(), "l": 1},
		{"a": math.Inf(1), "l": 1},
	} {
		_, err := DocumentSample([]string{"a"}, "l", doc)
		assert.Error(t, err, "%v", doc)
	}
}

func TestOpenRejectsInvalidFieldNames(t *testing.T) {
	for _, name := range []string{"", "_id", "_n", "a.b", "$a"} {
		_, err := Open(context.Background(), nil, []string{name}, "room")
		assert.Error(t, err, name)
	}
}
