package partdb

import (
	"context"
	"net/url"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var errPageNotCached = badger.ErrKeyNotFound

// duplicate checks visit the same part info pages over and over within
// a run, keeping them for a few minutes is safe
const pageCacheLifetime = time.Minute * 10

type pageCache struct {
	db      *badger.DB
	baseUrl *url.URL
}

func (c pageCache) key(endpoint string) string {
	return c.baseUrl.Hostname() + ":" + endpoint
}

func (c pageCache) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.db == nil {
		return nil, errPageNotCached
	}

	ctx, span := tracer.Start(ctx, "cache:get")
	defer span.End()

	key := c.key(endpoint)
	span.SetAttributes(attribute.String("cache_key", key))

	tx := c.db.NewTransaction(false)
	defer tx.Discard()

	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return nil, errPageNotCached
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return nil, err
	}
	contents, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return nil, err
	}

	span.SetStatus(codes.Ok, "CACHE HIT")
	return contents, nil
}

func (c pageCache) set(ctx context.Context, endpoint string, contents []byte) error {
	if c.db == nil {
		return nil
	}

	ctx, span := tracer.Start(ctx, "cache:set")
	defer span.End()

	key := c.key(endpoint)
	span.SetAttributes(attribute.String("cache_key", key))

	tx := c.db.NewTransaction(true)
	defer tx.Commit()

	entry := badger.NewEntry([]byte(key), contents).WithTTL(pageCacheLifetime)
	err := tx.SetEntry(entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}
	return nil
}
