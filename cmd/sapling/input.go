package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/bio/mongo"
	biosql "github.com/pbanos/sapling/pkg/bio/sql"
	"github.com/pbanos/sapling/pkg/bio/sql/pgadapter"
	"github.com/pbanos/sapling/pkg/bio/sql/sqlite3adapter"
	"github.com/pbanos/sapling/pkg/sapling"
)

type source int

const (
	textSource source = iota
	csvSource
	sqlite3Source
	postgreSQLSource
	mongoDBSource
)

func (s source) String() string {
	return [...]string{"text", "CSV", "SQLite3", "PostgreSQL", "MongoDB"}[s]
}

// sourceOf tells the kind of set an input or output string points to.
func sourceOf(input string) source {
	switch {
	case strings.HasPrefix(input, "postgresql://"), strings.HasPrefix(input, "postgres://"):
		return postgreSQLSource
	case strings.HasPrefix(input, "mongodb://"):
		return mongoDBSource
	case strings.HasSuffix(input, ".db"):
		return sqlite3Source
	case strings.HasSuffix(input, ".csv"):
		return csvSource
	}
	return textSource
}

// datasetPath resolves the clean and noisy dataset names to their configured paths.
func (rcc *rootCmdConfig) datasetPath(name string) string {
	switch name {
	case "clean":
		return rcc.v.GetString(cleanDatasetKey)
	case "noisy":
		return rcc.v.GetString(noisyDatasetKey)
	}
	return name
}

// metadata reads the metadata at path, or returns nil metadata for an empty path.
func (rcc *rootCmdConfig) metadata(path string) (*bio.Metadata, error) {
	if path == "" {
		return nil, nil
	}
	rcc.Logf("Reading metadata at %s...", path)
	return bio.ReadYMLMetadataFromFile(path)
}

/*
loadSet reads the set the input points to and builds it with sg, or
sapling.NewSet if sg is nil. An empty input reads a text set from STDIN.
*/
func (rcc *rootCmdConfig) loadSet(ctx context.Context, input string, md *bio.Metadata, sg bio.SetGenerator) (sapling.Set, error) {
	if sg == nil {
		sg = sapling.NewSet
	}
	features := md.FeatureNames(md.FeatureCount())
	src := sourceOf(input)
	switch src {
	case sqlite3Source, postgreSQLSource:
		adapter, err := sqlAdapter(src, input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		rcc.Logf("Opening %s set...", src)
		ss, err := biosql.OpenSet(ctx, adapter, features, md.LabelName())
		if err != nil {
			return nil, err
		}
		return readSet(ctx, ss, sg)
	case mongoDBSource:
		session, err := mongo.Dial(input)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		rcc.Logf("Opening %s set...", src)
		ms, err := mongo.Open(ctx, session, features, md.LabelName())
		if err != nil {
			return nil, err
		}
		return readSet(ctx, ms, sg)
	case csvSource:
		rcc.Logf("Reading CSV set from %s...", input)
		return bio.ReadCSVSetFromFilePath(input, md, sg)
	}
	if input == "" {
		rcc.Logf("Reading text set from STDIN...")
	} else {
		rcc.Logf("Reading text set from %s...", input)
	}
	return bio.ReadTextSetFromFilePath(input, md.FeatureCount(), sg)
}

/*
writeSet dumps a set onto the output, creating the samples table or
collection on databases. An empty output writes a CSV set on STDOUT.
*/
func (rcc *rootCmdConfig) writeSet(ctx context.Context, output string, s sapling.Set, md *bio.Metadata) error {
	features := md.FeatureNames(featureCountOf(s, md))
	src := sourceOf(output)
	switch src {
	case sqlite3Source, postgreSQLSource:
		adapter, err := sqlAdapter(src, output)
		if err != nil {
			return err
		}
		defer adapter.Close()
		ss, err := biosql.CreateSet(ctx, adapter, features, md.LabelName())
		if err != nil {
			return err
		}
		return writeSamples(ctx, ss, s)
	case mongoDBSource:
		session, err := mongo.Dial(output)
		if err != nil {
			return err
		}
		defer session.Close()
		ms, err := mongo.Open(ctx, session, features, md.LabelName())
		if err != nil {
			return err
		}
		return writeSamples(ctx, ms, s)
	}
	if output == "" {
		rcc.Logf("Writing CSV set on STDOUT...")
		return bio.WriteCSVSet(os.Stdout, s, md)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()
	rcc.Logf("Writing %s set on %s...", src, output)
	if src == csvSource {
		err = bio.WriteCSVSet(f, s, md)
	} else {
		err = bio.WriteTextSet(f, s)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func sqlAdapter(src source, url string) (biosql.Adapter, error) {
	if src == postgreSQLSource {
		return pgadapter.New(url)
	}
	return sqlite3adapter.New(url)
}

func readSet(ctx context.Context, s biosql.Set, sg bio.SetGenerator) (sapling.Set, error) {
	samples, err := biosql.ReadAll(ctx, s)
	if err != nil {
		return nil, err
	}
	return sg(samples), nil
}

type sampleWriter interface {
	Write(context.Context, []sapling.Sample) (int, error)
}

func writeSamples(ctx context.Context, w sampleWriter, s sapling.Set) error {
	n, err := w.Write(ctx, s.Samples())
	if err != nil {
		return fmt.Errorf("writing samples (%d written): %w", n, err)
	}
	return nil
}

// setGenerator picks the subsetting implementation of loaded sets.
func setGenerator(memoryIntensive, cpuIntensive bool) (bio.SetGenerator, error) {
	switch {
	case memoryIntensive && cpuIntensive:
		return nil, fmt.Errorf("cannot set both memory-intensive and cpu-intensive flags at the same time")
	case memoryIntensive:
		return sapling.NewMemoryIntensiveSet, nil
	case cpuIntensive:
		return sapling.NewCPUIntensiveSet, nil
	}
	return sapling.NewSet, nil
}

// featureCountOf returns the number of features of the samples in s.
func featureCountOf(s sapling.Set, md *bio.Metadata) int {
	if samples := s.Samples(); len(samples) > 0 {
		return samples[0].FeatureCount()
	}
	return md.FeatureCount()
}
