package ledger

import (
	"context"
	"testing"

	"github.com/Luismorlan/nashbites/model"
	"github.com/Luismorlan/nashbites/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endpoint = "/hooks/articles.create"

type fakeCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, endpoint string, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	body, ok := f.entries[endpoint+"|"+key]
	return body, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, endpoint string, key string, body []byte) error {
	f.sets++
	f.entries[endpoint+"|"+key] = body
	return nil
}

func TestCheck_Miss(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	l := New(db, model.WebhookSourceGumloop)

	exists, body := l.Check(context.Background(), "key-1", endpoint)
	assert.False(t, exists)
	assert.Nil(t, body)

	exists, _ = l.Check(context.Background(), "", endpoint)
	assert.False(t, exists)
}

func TestRecordThenCheck(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	l := New(db, model.WebhookSourceGumloop)
	ctx := context.Background()

	body := []byte(`{"article_id":"a1","canonical":true,"message":"Article created successfully","slug":"best-tacos"}`)
	require.Nil(t, l.Record(ctx, Entry{Endpoint: endpoint, IdempotencyKey: "key-1", StatusCode: 201, Ok: true, Body: body}))

	exists, replay := l.Check(ctx, "key-1", endpoint)
	assert.True(t, exists)
	assert.Equal(t, string(body), string(replay))

	// Keys are scoped per endpoint.
	exists, _ = l.Check(ctx, "key-1", "/hooks/articles.merge")
	assert.False(t, exists)

	var row model.WebhookLog
	require.Nil(t, db.First(&row).Error)
	assert.Equal(t, model.WebhookSourceGumloop, row.Source)
	assert.Equal(t, 201, row.StatusCode)
	require.NotNil(t, row.RequestIdemKey)
	assert.Equal(t, "key-1", *row.RequestIdemKey)
}

func TestFailedCallsAreNotReplayed(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	l := New(db, model.WebhookSourceGumloop)
	ctx := context.Background()

	require.Nil(t, l.Record(ctx, Entry{Endpoint: endpoint, IdempotencyKey: "key-1", StatusCode: 500, Ok: false, Body: []byte(`{"error":"boom"}`)}))
	exists, _ := l.Check(ctx, "key-1", endpoint)
	assert.False(t, exists)

	// Calls without a key are still logged.
	require.Nil(t, l.Record(ctx, Entry{Endpoint: endpoint, StatusCode: 401, Body: []byte(`{"error":"Invalid authentication"}`)}))
	logs, err := l.Recent(ctx, endpoint, 10)
	require.Nil(t, err)
	assert.Len(t, logs, 2)
	assert.Nil(t, logs[0].RequestIdemKey)
}

func TestCheck_UsesCache(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	cache := newFakeCache()
	l := New(db, model.WebhookSourceGumloop).WithCache(cache)
	ctx := context.Background()

	require.Nil(t, l.Record(ctx, Entry{Endpoint: endpoint, IdempotencyKey: "key-1", StatusCode: 200, Ok: true, Body: []byte(`{"a":1}`)}))
	require.Nil(t, l.Record(ctx, Entry{Endpoint: endpoint, IdempotencyKey: "key-2", StatusCode: 400, Ok: false, Body: []byte(`{"a":2}`)}))
	assert.Equal(t, 1, cache.sets)

	cache.entries[endpoint+"|key-1"] = []byte(`{"a":"cached"}`)
	exists, body := l.Check(ctx, "key-1", endpoint)
	assert.True(t, exists)
	assert.Equal(t, `{"a":"cached"}`, string(body))

	// A broken cache falls back to the database.
	cache.getErr = errors.New("redis down")
	exists, body = l.Check(ctx, "key-1", endpoint)
	assert.True(t, exists)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestCanonicalize(t *testing.T) {
	out, err := Canonicalize([]byte(`{ "slug": "a&b", "article_id" : "x", "n": 1.50 }`))
	require.Nil(t, err)
	assert.Equal(t, `{"article_id":"x","n":1.50,"slug":"a\u0026b"}`, string(out))

	_, err = Canonicalize([]byte(`{`))
	assert.NotNil(t, err)
}
