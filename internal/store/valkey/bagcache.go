package valkey

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/maraichr/cdm/internal/records"
)

// KeyPrefix namespaces decoded bags in the shared keyspace.
const KeyPrefix = "cdm:bag:"

// BagCache stores decoded FileBags as JSON so processes decoding the same
// content can share the work. Cache failures are logged and treated as
// misses; they never fail a build.
type BagCache struct {
	client valkey.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewBagCache(client valkey.Client, ttl time.Duration, logger *slog.Logger) *BagCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &BagCache{client: client, ttl: ttl, logger: logger}
}

func (c *BagCache) Get(ctx context.Context, key string) (*records.FileBag, bool) {
	data, err := c.client.Do(ctx, c.client.B().Get().Key(KeyPrefix+key).Build()).AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			c.logger.Warn("bag cache get", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}

	bag := &records.FileBag{}
	if err := json.Unmarshal(data, bag); err != nil {
		c.logger.Warn("bag cache decode", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return bag, true
}

func (c *BagCache) Add(ctx context.Context, key string, bag *records.FileBag) {
	data, err := json.Marshal(bag)
	if err != nil {
		c.logger.Warn("bag cache encode", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	var cmd valkey.Completed
	if c.ttl > 0 {
		cmd = c.client.B().Set().Key(KeyPrefix + key).Value(valkey.BinaryString(data)).Ex(c.ttl).Build()
	} else {
		cmd = c.client.B().Set().Key(KeyPrefix + key).Value(valkey.BinaryString(data)).Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("bag cache set", slog.String("key", key), slog.String("error", err.Error()))
	}
}

var _ records.Cache = (*BagCache)(nil)
