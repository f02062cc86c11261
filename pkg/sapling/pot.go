package sapling

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

/*
Pot represents the context in which a tree is grown.

Its Grow method takes a context and a Set and returns a tree that predicts
the labels of the set, or an error.
*/
type Pot interface {
	Grow(context.Context, Set) (*Tree, error)
}

type pot struct {
	splitWorkers int
	logger       *slog.Logger
}

// potConfiger is implemented by the pots options can be applied to
type potConfiger interface {
	setSplitWorkers(n int)
	setLogger(l *slog.Logger)
}

func (p *pot) setSplitWorkers(n int)     { p.splitWorkers = n }
func (p *pot) setLogger(l *slog.Logger) { p.logger = l }

/*
SplitWorkers sets the number of features scanned concurrently when looking
for the best split of a node. Values below 2 scan features sequentially.
*/
func SplitWorkers(n int) func(potConfiger) {
	return func(p potConfiger) {
		p.setSplitWorkers(n)
	}
}

// PotLogger sets the logger on which the pot reports grown trees.
func PotLogger(l *slog.Logger) func(potConfiger) {
	return func(p potConfiger) {
		p.setLogger(l)
	}
}

/*
New returns a Pot configured with the given options. Without options, the
returned Pot scans features sequentially and does not log.
*/
func New(options ...func(potConfiger)) Pot {
	p := &pot{splitWorkers: 1, logger: discardLogger()}
	for _, opt := range options {
		opt(p)
	}
	if p.logger == nil {
		p.logger = discardLogger()
	}
	return p
}

/*
Grow takes a context and a set and grows a tree from it: nodes whose samples
all share the same label become leaves; the rest are split with the partition
of highest information gain and both sides are developed one level deeper.

It returns ErrEmptySet for a set without samples and an error wrapping
ErrNoSplit if a node with mixed labels cannot be split. If the context is
done before the tree is complete, the context error is returned.
*/
func (p *pot) Grow(ctx context.Context, s Set) (*Tree, error) {
	if s.Count() == 0 {
		return nil, ErrEmptySet
	}
	root, depth, err := p.develop(ctx, s, 0)
	if err != nil {
		return nil, err
	}
	t := &Tree{Root: root, Depth: depth}
	p.logger.DebugContext(ctx, "tree grown", "samples", s.Count(), "depth", depth, "leaves", t.Leaves())
	return t, nil
}

func (p *pot) develop(ctx context.Context, s Set, depth int) (Node, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, depth, err
	}
	count := s.Count()
	if count == 0 {
		return nil, depth, ErrEmptySet
	}
	if label, ok := PureLabel(s); ok {
		return &Leaf{Label: label, Count: count}, depth, nil
	}
	partition, err := p.findBestSplit(ctx, s)
	if err != nil {
		return nil, depth, err
	}
	if partition == nil {
		return nil, depth, fmt.Errorf("developing node at depth %d with %d samples: %w", depth, count, ErrNoSplit)
	}
	left, leftDepth, err := p.develop(ctx, partition.Left, depth+1)
	if err != nil {
		return nil, depth, err
	}
	right, rightDepth, err := p.develop(ctx, partition.Right, depth+1)
	if err != nil {
		return nil, depth, err
	}
	if rightDepth > leftDepth {
		leftDepth = rightDepth
	}
	return &Branch{
		Feature:   partition.Feature,
		Threshold: partition.Threshold,
		Left:      left,
		Right:     right,
	}, leftDepth, nil
}

func (p *pot) findBestSplit(ctx context.Context, s Set) (*Partition, error) {
	if p.splitWorkers > 1 {
		return FindBestSplitConcurrently(ctx, s, p.splitWorkers)
	}
	return FindBestSplit(s)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
