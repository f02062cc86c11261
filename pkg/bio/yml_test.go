package bio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadYMLMetadata(t *testing.T) {
	md, err := ReadYMLMetadata([]byte(`
features: [s1, s2, s3]
label: location
classes: [4, 2, 2]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, md.FeatureNames(7))
	assert.Equal(t, 3, md.FeatureCount())
	assert.Equal(t, "location", md.LabelName())
	assert.Equal(t, sapling.Classes{2, 4}, md.ClassesFor(nil))
}

func TestReadInvalidYMLMetadata(t *testing.T) {
	for _, data := range []string{
		"features: [a, a]",
		"features: [a, b]\nlabel: b",
		"featurez: [a]",
		"features: a: b",
	} {
		_, err := ReadYMLMetadata([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestDefaultMetadata(t *testing.T) {
	var md *Metadata
	assert.Equal(t, []string{"X0", "X1"}, md.FeatureNames(2))
	assert.Equal(t, DefaultFeatureCount, md.FeatureCount())
	assert.Equal(t, DefaultLabelName, md.LabelName())
	s := sapling.NewSet([]sapling.Sample{sapling.NewSample([]float64{1}, 3), sapling.NewSample([]float64{1}, 1)})
	assert.Equal(t, sapling.Classes{1, 3}, md.ClassesFor(s))
}

func TestYMLMetadataFileRoundTrip(t *testing.T) {
	md := &Metadata{Features: []string{"a", "b"}, Label: "c", Classes: []int{1, 2}}
	var buf bytes.Buffer
	require.NoError(t, WriteYMLMetadata(&buf, md))
	path := filepath.Join(t.TempDir(), "metadata.yml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	got, err := ReadYMLMetadataFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, md, got)

	_, err = ReadYMLMetadataFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
