/*
Package redisstore provides an implementation of bio.TreeStore
backed by a redis DB.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/sapling"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc      *redis.Client
	prefix  string
	tencdec bio.TreeEncodeDecoder
}

/*
New builds a bio.TreeStore backed by a redis DB. Trees are kept under
the given key prefix, encoded with the given TreeEncodeDecoder or in JSON
if it is nil.
*/
func New(rc *redis.Client, prefix string, tencdec bio.TreeEncodeDecoder) bio.TreeStore {
	if tencdec == nil {
		tencdec = bio.JSONTreeEncodeDecoder{}
	}
	return &redisStore{rc, prefix, tencdec}
}

/*
Dial takes the address of a redis server, in host:port form, and returns a
client for it or an error if the server does not answer to a ping.
*/
func Dial(addr string) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	if err := rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return rc, nil
}

func (rs *redisStore) Store(ctx context.Context, key string, t *sapling.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(key)
	data, err := rs.tencdec.Encode(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %w", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %w", redisID, err)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, key string) (*sapling.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	redisID := rs.keyFor(key)
	data, err := rs.rc.Get(redisID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", redisID, bio.ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", redisID, err)
	}
	t, err := rs.tencdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding %q: %w", redisID, data, err)
	}
	return t, nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(key string) string {
	if rs.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", rs.prefix, key)
}
