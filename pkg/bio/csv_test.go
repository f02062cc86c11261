package bio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVSetWithoutHeader(t *testing.T) {
	s, err := ReadCSVSet(strings.NewReader("1,2,1\n3.5,4,2\n"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, s.Labels())
	assert.Equal(t, []float64{3.5, 4}, s.Samples()[1].Values())
}

func TestReadCSVSetMatchesHeaderToMetadata(t *testing.T) {
	md := &Metadata{Features: []string{"a", "b"}, Label: "room"}
	s, err := ReadCSVSet(strings.NewReader("room,b,a\n1,20,10\n2,40,30\n"), md, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, s.Labels())
	assert.Equal(t, []float64{10, 20}, s.Samples()[0].Values())
}

func TestReadCSVSetErrors(t *testing.T) {
	md := &Metadata{Features: []string{"a", "b"}}
	tests := []struct {
		name string
		data string
		md   *Metadata
	}{
		{"missing column in header", "a,room\n1,2\n", md},
		{"column count differs from metadata", "1,2\n", md},
		{"ragged rows", "1,2,1\n1,2\n", nil},
		{"bad value", "a,b,room\n1,x,1\n", md},
		{"single column", "1\n", nil},
		{"NaN value", "a,b,room\n1,NaN,1\n", md},
		{"infinite value", "+Inf,2,1\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSVSet(strings.NewReader(tt.data), tt.md, nil)
			assert.Error(t, err)
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	s := sapling.NewSet([]sapling.Sample{
		sapling.NewSample([]float64{-64, 0.25}, 1),
		sapling.NewSample([]float64{-17.5, 3}, 4),
	})
	var buf bytes.Buffer
	require.NoError(t, WriteCSVSet(&buf, s, nil))
	assert.Equal(t, "X0,X1,room\n-64,0.25,1\n-17.5,3,4\n", buf.String())
	got, err := ReadCSVSet(&buf, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, s.Samples(), got.Samples())
}

func TestWriteCSVSetWithMismatchingMetadata(t *testing.T) {
	s := sapling.NewSet([]sapling.Sample{sapling.NewSample([]float64{1}, 1)})
	var buf bytes.Buffer
	assert.Error(t, WriteCSVSet(&buf, s, &Metadata{Features: []string{"a", "b"}}))
}
