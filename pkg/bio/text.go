package bio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/pkg/sapling"
)

/*
ReadTextSet takes an io.Reader for a whitespace-delimited text stream, the
number of features of each sample and a SetGenerator and returns the
sapling.Set built with the SetGenerator and the samples parsed from the
reader or an error.

Every non-blank line is expected to hold the values of the features in order
followed by the integer label of the sample. Lines with another number of
columns are rejected.
*/
func ReadTextSet(reader io.Reader, featureCount int, sg SetGenerator) (sapling.Set, error) {
	scanner := bufio.NewScanner(reader)
	samples := []sapling.Sample{}
	for l := 1; scanner.Scan(); l++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != featureCount+1 {
			return nil, fmt.Errorf("parsing line %d: expected %d columns, got %d", l, featureCount+1, len(fields))
		}
		sample, err := parseSample(fields)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", l, err)
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text set: %w", err)
	}
	return sg.orDefault()(samples), nil
}

/*
ReadTextSetFromFilePath takes a filepath string, the number of features of
each sample and a SetGenerator, opens the file to which the filepath points
to and uses ReadTextSet to return a sapling.Set or an error read from it.
An empty filepath reads from STDIN.
*/
func ReadTextSetFromFilePath(filepath string, featureCount int, sg SetGenerator) (sapling.Set, error) {
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
	set, err := ReadTextSet(f, featureCount, sg)
	if err != nil {
		err = fmt.Errorf("parsing text file %s: %w", filepath, err)
	}
	return set, err
}

// parseSample takes the feature values followed by the label of a sample.
func parseSample(fields []string) (sapling.Sample, error) {
	values := make([]float64, len(fields)-1)
	for i, v := range fields[:len(fields)-1] {
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sapling.Sample{}, fmt.Errorf("converting value %q of feature %d to float64: %w", v, i, err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return sapling.Sample{}, fmt.Errorf("value %q of feature %d is not a finite number", v, i)
		}
		values[i] = value
	}
	label, err := parseLabel(fields[len(fields)-1])
	if err != nil {
		return sapling.Sample{}, err
	}
	return sapling.NewSample(values, label), nil
}

// parseLabel accepts integers written as floats, like 1.0
func parseLabel(v string) (int, error) {
	label, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("converting label %q to a number: %w", v, err)
	}
	if math.Trunc(label) != label || math.IsInf(label, 0) {
		return 0, fmt.Errorf("label %q is not an integer", v)
	}
	return int(label), nil
}

/*
WriteTextSet takes an io.Writer and a sapling.Set and writes the samples of
the set onto the writer as tab-separated lines that ReadTextSet can read.
*/
func WriteTextSet(w io.Writer, s sapling.Set) error {
	bw := bufio.NewWriter(w)
	for _, sample := range s.Samples() {
		for _, v := range sample.Values() {
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			bw.WriteByte('\t')
		}
		bw.WriteString(strconv.Itoa(sample.Label()))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing text set: %w", err)
	}
	return nil
}
