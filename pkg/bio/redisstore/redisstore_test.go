package redisstore

import (
	"context"
	"testing"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/stretchr/testify/assert"
	"gopkg.in/redis.v5"
)

func TestKeyFor(t *testing.T) {
	rs := New(nil, "sapling", nil).(*redisStore)
	assert.Equal(t, "sapling:fold-2:pruned", rs.keyFor(bio.FoldKey(2, true)))
	rs = New(nil, "", nil).(*redisStore)
	assert.Equal(t, "fold-2:unpruned", rs.keyFor(bio.FoldKey(2, false)))
}

func TestNewDefaultsToJSON(t *testing.T) {
	rs := New(nil, "p", nil).(*redisStore)
	assert.IsType(t, bio.JSONTreeEncodeDecoder{}, rs.tencdec)
}

func TestStoreWithCancelledContext(t *testing.T) {
	rc := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer rc.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ts := New(rc, "p", nil)
	assert.ErrorIs(t, ts.Store(ctx, "k", nil), context.Canceled)
	_, err := ts.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
