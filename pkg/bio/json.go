package bio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/pkg/sapling"
)

/*
WriteJSONTree takes an io.Writer and a sapling.Tree and prints
a JSON representation of the tree onto the writer. It returns
an error if serialization or printing fails, nil otherwise.
*/
func WriteJSONTree(w io.Writer, tree *sapling.Tree) error {
	encoder := json.NewEncoder(w)
	err := encoder.Encode(tree)
	if err != nil {
		return fmt.Errorf("serializing tree as JSON: %w", err)
	}
	return nil
}

/*
WriteJSONTreeToFile takes a filepath string and a sapling.Tree
and tries to create a file on the given filepath and later use
WriteJSONTree to write a JSON representation of the tree on it.
An empty filepath writes to STDOUT.
*/
func WriteJSONTreeToFile(filepath string, tree *sapling.Tree) error {
	if filepath == "" {
		return WriteJSONTree(os.Stdout, tree)
	}
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	err = WriteJSONTree(f, tree)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

/*
ReadJSONTree takes an io.Reader and attempts to JSON-decode a
tree from it. It returns the read tree or an error.
*/
func ReadJSONTree(r io.Reader) (*sapling.Tree, error) {
	decoder := json.NewDecoder(r)
	tree := &sapling.Tree{}
	err := decoder.Decode(tree)
	if err != nil {
		return nil, fmt.Errorf("decoding json Tree: %w", err)
	}
	return tree, nil
}

/*
ReadJSONTreeFromFile opens the file at the given filepath and reads a tree
from it with ReadJSONTree. An empty filepath reads from STDIN.
*/
func ReadJSONTreeFromFile(filepath string) (*sapling.Tree, error) {
	if filepath == "" {
		return ReadJSONTree(os.Stdin)
	}
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}
	defer f.Close()
	return ReadJSONTree(f)
}

/*
JSONTreeEncodeDecoder encodes trees into JSON with the same format
WriteJSONTree uses and decodes them back.
*/
type JSONTreeEncodeDecoder struct{}

// Encode returns the JSON representation of the tree
func (JSONTreeEncodeDecoder) Encode(t *sapling.Tree) ([]byte, error) {
	return json.Marshal(t)
}

// Decode returns the tree represented by the JSON data
func (JSONTreeEncodeDecoder) Decode(data []byte) (*sapling.Tree, error) {
	t := &sapling.Tree{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}
