package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps all Redis transport failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

const watchBuffer = 16

// Redis is a Redis-backed [Store]. Keys live at <prefix>:<origin>:<key> with
// no TTL (session fields survive reloads and are cleared only by logout).
// Mutations publish a JSON notification on <prefix>:<origin>:events carrying
// the writer ID; Watch drops notifications from its own writer so that, like
// browser storage events, a handle only sees out-of-tab writes.
type Redis struct {
	redis  redis.UniversalClient
	prefix string
	origin string
	writer string

	pubsub *redis.PubSub
}

// NewRedis creates a Redis-backed store handle for the given origin.
// Every handle gets a unique writer ID; one handle per tab.
func NewRedis(client redis.UniversalClient, prefix, origin string) *Redis {
	if prefix == "" {
		prefix = "da"
	}
	if origin == "" {
		origin = "0"
	}
	return &Redis{
		redis:  client,
		prefix: prefix,
		origin: origin,
		writer: uuid.NewString(),
	}
}

// WriterID returns the handle's writer ID. Notifications carrying this ID
// are filtered out of Watch.
func (s *Redis) WriterID() string {
	return s.writer
}

func (s *Redis) key(name string) string {
	return s.prefix + ":" + s.origin + ":" + name
}

func (s *Redis) channel() string {
	return s.prefix + ":" + s.origin + ":events"
}

type changeMessage struct {
	Writer string   `json:"writer"`
	Keys   []string `json:"keys"`
}

// Snapshot reads the three session keys with a single MGET.
func (s *Redis) Snapshot(ctx context.Context) (Snapshot, error) {
	vals, err := s.redis.MGet(ctx, s.key(KeyToken), s.key(KeyAdminToken), s.key(KeyUser)).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	read := func(v interface{}) string {
		str, _ := v.(string)
		return str
	}
	return Snapshot{
		Token:      read(vals[0]),
		AdminToken: read(vals[1]),
		User:       read(vals[2]),
	}, nil
}

// Set writes one key and publishes a change notification.
func (s *Redis) Set(ctx context.Context, key, value string) error {
	return s.write(ctx, []string{key}, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, s.key(key), value, 0)
	})
}

// Remove deletes the given keys as one pipelined group and publishes a
// single change notification covering all of them. Best-effort: the DEL and
// the PUBLISH are pipelined, not transactional.
func (s *Redis) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.write(ctx, keys, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, full...)
	})
}

func (s *Redis) write(ctx context.Context, keys []string, mutate func(redis.Pipeliner)) error {
	payload, err := json.Marshal(changeMessage{Writer: s.writer, Keys: keys})
	if err != nil {
		return err
	}

	_, err = s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		mutate(pipe)
		pipe.Publish(ctx, s.channel(), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Watch subscribes to the origin's event channel and forwards foreign
// writes. Undecodable messages and own writes are dropped silently; a slow
// receiver loses notifications rather than blocking the pump (the focus
// poll upstream recovers from loss).
func (s *Redis) Watch(ctx context.Context) (<-chan Change, error) {
	s.pubsub = s.redis.Subscribe(ctx, s.channel())
	if _, err := s.pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := make(chan Change, watchBuffer)
	go func() {
		defer close(out)
		for msg := range s.pubsub.Channel() {
			var cm changeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &cm); err != nil {
				continue
			}
			if cm.Writer == s.writer {
				continue
			}
			select {
			case out <- Change{Keys: cm.Keys, Writer: cm.Writer}:
			default:
			}
		}
	}()

	return out, nil
}

// Close unsubscribes the watch channel. The underlying Redis client is
// owned by the caller and is not closed.
func (s *Redis) Close() error {
	if s.pubsub != nil {
		return s.pubsub.Close()
	}
	return nil
}
