// Package ledger records every terminal webhook outcome and answers whether a
// (idempotency key, endpoint) pair already succeeded, so that retries get the
// original response back instead of being processed twice.
package ledger

import (
	"context"

	"github.com/Luismorlan/nashbites/model"
	"github.com/Luismorlan/nashbites/utils"
	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReplayCache is an optional fast path in front of the webhook log table.
// utils.RedisReplayStore implements it.
type ReplayCache interface {
	Get(ctx context.Context, endpoint string, key string) ([]byte, bool, error)
	Set(ctx context.Context, endpoint string, key string, body []byte) error
}

var _ ReplayCache = (*utils.RedisReplayStore)(nil)

type Ledger struct {
	db     *gorm.DB
	cache  ReplayCache
	source string
}

func New(db *gorm.DB, source string) *Ledger {
	return &Ledger{db: db, source: source}
}

// WithCache puts cache in front of the database. The database stays the
// source of truth, cache misses and cache errors fall through to it.
func (l *Ledger) WithCache(cache ReplayCache) *Ledger {
	l.cache = cache
	return l
}

// Entry is one terminal outcome of a webhook call.
type Entry struct {
	Endpoint       string
	IdempotencyKey string
	StatusCode     int
	Ok             bool
	// Body is the JSON stored in the log. For successful calls it is the
	// exact response body so that it can be replayed.
	Body []byte
}

// Check returns the response body of the latest successful call with the
// same key on the same endpoint. Failed calls are never replayed. Lookup
// errors are logged and reported as a miss so that a broken ledger never
// blocks ingestion.
func (l *Ledger) Check(ctx context.Context, key string, endpoint string) (bool, []byte) {
	if key == "" {
		return false, nil
	}
	logger := Log.WithFields(logrus.Fields{"endpoint": endpoint, "idempotency_key": key})

	if l.cache != nil {
		body, ok, err := l.cache.Get(ctx, endpoint, key)
		if err != nil {
			logger.Errorln("replay cache lookup failed: ", err)
		} else if ok {
			return true, body
		}
	}

	var logs []model.WebhookLog
	err := l.db.WithContext(ctx).
		Where("request_idem_key = ? AND endpoint = ? AND ok = ?", key, endpoint, true).
		Order("created_at desc").
		Limit(1).
		Find(&logs).Error
	if err != nil {
		logger.Errorln("idempotency lookup failed: ", err)
		return false, nil
	}
	if len(logs) == 0 {
		return false, nil
	}

	// jsonb does not keep the original layout, re-encode to the layout
	// responses are written with.
	body, err := Canonicalize(logs[0].BodyJson)
	if err != nil {
		logger.Errorln("stored response is not valid json: ", err)
		return false, nil
	}
	return true, body
}

// Record appends a log row for entry. Callers treat a failure as non-fatal,
// it is returned only so they can report it.
func (l *Ledger) Record(ctx context.Context, entry Entry) error {
	row := model.WebhookLog{
		Id:             uuid.New().String(),
		Source:         l.source,
		Endpoint:       entry.Endpoint,
		RequestIdemKey: utils.StringPtr(entry.IdempotencyKey),
		StatusCode:     entry.StatusCode,
		Ok:             entry.Ok,
		BodyJson:       datatypes.JSON(entry.Body),
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		Log.WithField("endpoint", entry.Endpoint).Errorln("fail to write webhook log: ", err)
		return errors.Wrap(err, "fail to write webhook log")
	}

	if l.cache != nil && entry.Ok && entry.IdempotencyKey != "" {
		if err := l.cache.Set(ctx, entry.Endpoint, entry.IdempotencyKey, entry.Body); err != nil {
			Log.WithField("endpoint", entry.Endpoint).Errorln("fail to cache response: ", err)
		}
	}
	return nil
}

// Recent lists the latest log rows, newest first, optionally for one
// endpoint.
func (l *Ledger) Recent(ctx context.Context, endpoint string, limit int) ([]model.WebhookLog, error) {
	query := l.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if endpoint != "" {
		query = query.Where("endpoint = ?", endpoint)
	}
	var logs []model.WebhookLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "fail to list webhook logs")
	}
	return logs, nil
}
