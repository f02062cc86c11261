package bio

import (
	"context"
	"fmt"
	"sync"

	"github.com/pbanos/sapling/pkg/sapling"
)

// ErrTreeNotFound is returned by TreeStores when no tree is stored under a key.
const ErrTreeNotFound = storeError("tree not found")

type storeError string

func (se storeError) Error() string {
	return string(se)
}

/*
TreeStore is an interface to manage a store
where trees can be kept and retrieved by key.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type TreeStore interface {
	// Store takes a key and a tree and stores the tree
	// under the key, replacing any tree previously stored
	// under it. It returns an error if the tree cannot be
	// stored.
	Store(ctx context.Context, key string, t *sapling.Tree) error
	// Get takes a key and returns the tree stored under it,
	// an error wrapping ErrTreeNotFound if there is none or
	// another error if the store cannot be queried.
	Get(ctx context.Context, key string) (*sapling.Tree, error)
	// Close closes the store, freeing any resources in use.
	Close(ctx context.Context) error
}

/*
TreeEncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type TreeEncodeDecoder interface {
	Encode(*sapling.Tree) ([]byte, error)
	Decode([]byte) (*sapling.Tree, error)
}

/*
FoldKey returns the key under which the tree grown on a cross validation
fold is stored: fold-N:pruned or fold-N:unpruned.
*/
func FoldKey(fold int, pruned bool) string {
	variant := "unpruned"
	if pruned {
		variant = "pruned"
	}
	return fmt.Sprintf("fold-%d:%s", fold, variant)
}

/*
StoreFoldTrees stores the unpruned and pruned trees of a fold result on
the store under their FoldKeys. Its signature allows using it, bound to a
store, as the OnFold callback of a sapling.CrossValidator.
*/
func StoreFoldTrees(ctx context.Context, ts TreeStore, r *sapling.FoldResult) error {
	if err := ts.Store(ctx, FoldKey(r.Index, false), r.Unpruned); err != nil {
		return err
	}
	return ts.Store(ctx, FoldKey(r.Index, true), r.Pruned)
}

type memoryTreeStore struct {
	trees map[string]*sapling.Tree
	lock  *sync.RWMutex
}

// NewMemoryTreeStore returns an implementation
// of TreeStore with the process memory space
// as underlying backend
func NewMemoryTreeStore() TreeStore {
	return &memoryTreeStore{
		trees: make(map[string]*sapling.Tree),
		lock:  &sync.RWMutex{},
	}
}

func (mts *memoryTreeStore) Store(ctx context.Context, key string, t *sapling.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mts.lock.Lock()
	defer mts.lock.Unlock()
	mts.trees[key] = t
	return nil
}

func (mts *memoryTreeStore) Get(ctx context.Context, key string) (*sapling.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mts.lock.RLock()
	defer mts.lock.RUnlock()
	t, ok := mts.trees[key]
	if !ok {
		return nil, fmt.Errorf("retrieving tree %q: %w", key, ErrTreeNotFound)
	}
	return t, nil
}

func (mts *memoryTreeStore) Close(context.Context) error {
	return nil
}
