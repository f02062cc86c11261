package bio

import (
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/pkg/sapling"
	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultFeatureCount is the number of features expected on sets when no metadata says otherwise
	DefaultFeatureCount = 7
	// DefaultLabelName is the name of the label column when no metadata says otherwise
	DefaultLabelName = "room"
)

/*
Metadata describes the columns of a set: the names of its features, in
order, the name of its label and, optionally, the classes its labels may
take. A nil *Metadata is valid and stands for the defaults.
*/
type Metadata struct {
	Features []string `yaml:"features"`
	Label    string   `yaml:"label"`
	Classes  []int    `yaml:"classes,omitempty"`
}

/*
ReadYMLMetadata takes a slice of bytes with a metadata specification in YML and
returns the Metadata parsed from it or an error.
The YML is expected to be an object with an optional features property holding
the list of feature names, an optional label property with the name of the
label and an optional classes property with the list of integer labels.
*/
func ReadYMLMetadata(md []byte) (*Metadata, error) {
	metadata := &Metadata{}
	err := yaml.UnmarshalStrict(md, metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %w", err)
	}
	names := make(map[string]bool)
	for _, f := range metadata.Features {
		if f == "" {
			return nil, fmt.Errorf("metadata declares a feature without name")
		}
		if names[f] {
			return nil, fmt.Errorf("metadata declares feature %q more than once", f)
		}
		names[f] = true
	}
	if names[metadata.LabelName()] {
		return nil, fmt.Errorf("label %q is also declared as a feature", metadata.LabelName())
	}
	if len(metadata.Classes) > 0 {
		metadata.Classes = sapling.NewClasses(metadata.Classes...)
	}
	return metadata, nil
}

/*
ReadYMLMetadataFromFile takes a filepath string, reads its contents and uses
ReadYMLMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadYMLMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %w", filepath, err)
	}
	metadata, err := ReadYMLMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %w", filepath, err)
	}
	return metadata, err
}

// WriteYMLMetadata writes the metadata in YML onto the writer.
func WriteYMLMetadata(w io.Writer, md *Metadata) error {
	data, err := yaml.Marshal(md)
	if err != nil {
		return fmt.Errorf("serializing metadata as YML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

/*
FeatureNames returns the names of n features: the ones declared on the
metadata if any, X0 to X{n-1} otherwise.
*/
func (md *Metadata) FeatureNames(n int) []string {
	if md != nil && len(md.Features) > 0 {
		return md.Features
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("X%d", i)
	}
	return names
}

/*
FeatureCount returns the number of features declared on the metadata, or
DefaultFeatureCount if none are.
*/
func (md *Metadata) FeatureCount() int {
	if md != nil && len(md.Features) > 0 {
		return len(md.Features)
	}
	return DefaultFeatureCount
}

// LabelName returns the name of the label column.
func (md *Metadata) LabelName() string {
	if md != nil && md.Label != "" {
		return md.Label
	}
	return DefaultLabelName
}

/*
ClassesFor returns the classes declared on the metadata or, if there are
none, the classes of the labels in the given set.
*/
func (md *Metadata) ClassesFor(s sapling.Set) sapling.Classes {
	if md != nil && len(md.Classes) > 0 {
		return sapling.NewClasses(md.Classes...)
	}
	return sapling.ClassesOf(s)
}
