package bio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twigTree() *sapling.Tree {
	return &sapling.Tree{
		Depth: 1,
		Root: &sapling.Branch{
			Feature:   0,
			Threshold: 5,
			Left:      &sapling.Leaf{Label: 1, Count: 5},
			Right:     &sapling.Leaf{Label: 2, Count: 3},
		},
	}
}

func TestJSONTreeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONTree(&buf, twigTree()))
	assert.JSONEq(t, `{"depth":1,"root":{"branch":{"feature":0,"threshold":5,
		"left":{"leaf":{"label":1,"count":5}},"right":{"leaf":{"label":2,"count":3}}}}}`, buf.String())
	got, err := ReadJSONTree(&buf)
	require.NoError(t, err)
	assert.Equal(t, twigTree(), got)
}

func TestJSONTreeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, WriteJSONTreeToFile(path, twigTree()))
	got, err := ReadJSONTreeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, twigTree(), got)
}

func TestReadInvalidJSONTree(t *testing.T) {
	_, err := ReadJSONTree(strings.NewReader(`{"depth":1,"root":{}}`))
	assert.Error(t, err)
}

func TestJSONTreeEncodeDecoder(t *testing.T) {
	var ed TreeEncodeDecoder = JSONTreeEncodeDecoder{}
	data, err := ed.Encode(twigTree())
	require.NoError(t, err)
	got, err := ed.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, twigTree(), got)
	_, err = ed.Decode([]byte("nope"))
	assert.Error(t, err)
}
