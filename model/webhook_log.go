package model

import (
	"time"

	"gorm.io/datatypes"
)

const WebhookSourceGumloop = "gumloop"

/*

WebhookLog is an append-only record of every webhook invocation, it is also
the backing store of the idempotency ledger: the latest Ok log of a
(RequestIdemKey, Endpoint) pair is replayed on retries.

Source: caller system, e.g. "gumloop"
Endpoint: logical endpoint path, keys are scoped per endpoint
RequestIdemKey: value of the x-idempotency-key header, optional
StatusCode: http status returned to the caller
Ok: whether the call succeeded
BodyJson: response body on success, error plus request body on failure
*/
type WebhookLog struct {
	Id             string         `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	Source         string         `json:"source"`
	Endpoint       string         `gorm:"index:idx_webhook_logs_idem,priority:2" json:"endpoint"`
	RequestIdemKey *string        `gorm:"index:idx_webhook_logs_idem,priority:1" json:"request_idem_key"`
	StatusCode     int            `json:"status_code"`
	Ok             bool           `json:"ok"`
	BodyJson       datatypes.JSON `json:"body_json"`
}
