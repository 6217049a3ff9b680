// Package webhook exposes the ingestion pipeline over HTTP. Every endpoint
// goes through the same steps: idempotent replay, authentication, JSON
// parsing, required field validation, then the endpoint itself. Every
// terminal outcome is recorded in the webhook log.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/Luismorlan/nashbites/enhancer"
	"github.com/Luismorlan/nashbites/ingestion"
	"github.com/Luismorlan/nashbites/utils"
	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/Luismorlan/nashbites/webhook/auth"
	"github.com/Luismorlan/nashbites/webhook/ledger"
	"github.com/Luismorlan/nashbites/webhook/validation"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	IdempotencyKeyHeader = "x-idempotency-key"
	EndpointPrefix       = "/hooks/"

	defaultNotifyTimeout = 10 * time.Second
	ledgerWriteTimeout   = 5 * time.Second
)

type Handler struct {
	gate     *auth.Gate
	ledger   *ledger.Ledger
	pipeline *ingestion.Pipeline

	notifier      enhancer.Notifier
	notifyTimeout time.Duration
	metrics       *utils.MetricsReporter

	now func() time.Time
}

func NewHandler(gate *auth.Gate, ledger *ledger.Ledger, pipeline *ingestion.Pipeline) *Handler {
	return &Handler{
		gate:          gate,
		ledger:        ledger,
		pipeline:      pipeline,
		notifyTimeout: defaultNotifyTimeout,
		now:           time.Now,
	}
}

// WithNotifier sets who is told about duplicate submissions.
func (h *Handler) WithNotifier(notifier enhancer.Notifier, timeout time.Duration) *Handler {
	h.notifier = notifier
	if timeout > 0 {
		h.notifyTimeout = timeout
	}
	return h
}

func (h *Handler) WithMetrics(metrics *utils.MetricsReporter) *Handler {
	h.metrics = metrics
	return h
}

// webhookCall is the state of one request as it goes through serve.
type webhookCall struct {
	endpoint string
	idemKey  string
	rawBody  []byte
	payload  validation.Value
	logger   *logrus.Entry
}

// decode fills v from the request body. Required fields have already been
// checked, this catches fields of the wrong type.
func (call *webhookCall) decode(v interface{}) error {
	if err := json.Unmarshal(call.rawBody, v); err != nil {
		return errInvalidPayload(err)
	}
	return nil
}

// endpointFunc runs an endpoint on an authenticated, validated call and
// returns the success status and body.
type endpointFunc func(ctx context.Context, call *webhookCall) (int, gin.H, error)

func (h *Handler) serve(endpoint string, required []string, fn endpointFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		call := &webhookCall{
			endpoint: endpoint,
			idemKey:  c.GetHeader(IdempotencyKeyHeader),
		}
		call.logger = Log.WithFields(logrus.Fields{"endpoint": endpoint, "idempotency_key": call.idemKey})

		// Replays skip authentication on purpose: the original call was
		// authenticated and nothing is executed again.
		if exists, cached := h.ledger.Check(ctx, call.idemKey, endpoint); exists {
			call.logger.Infoln("replay stored response")
			h.record(call, http.StatusOK, true, cached, true)
			writeRaw(c, http.StatusOK, cached)
			return
		}

		defer func() {
			if r := recover(); r != nil {
				call.logger.Errorln("panic while handling webhook: ", r)
				h.fail(c, call, errInternal(fmt.Errorf("panic: %v", r)))
			}
		}()

		raw, err := ioutil.ReadAll(c.Request.Body)
		if err != nil {
			h.fail(c, call, errInvalidJSON(err))
			return
		}
		if !h.gate.Authorize(c.Request.Header, raw) {
			h.fail(c, call, errUnauthorized())
			return
		}
		payload, err := validation.Parse(raw)
		if err != nil {
			h.fail(c, call, errInvalidJSON(err))
			return
		}
		call.rawBody, call.payload = raw, payload

		if missing := validation.MissingFields(payload, required); len(missing) > 0 {
			h.fail(c, call, errMissingFields(missing))
			return
		}

		status, body, err := fn(ctx, call)
		if err != nil {
			h.fail(c, call, err)
			return
		}
		encoded := encodeJSON(body)
		h.record(call, status, true, encoded, false)
		writeRaw(c, status, encoded)
	}
}

func (h *Handler) fail(c *gin.Context, call *webhookCall, err error) {
	werr := asWebhookError(err)
	logger := call.logger.WithField("status", werr.status)
	if werr.status >= http.StatusInternalServerError {
		logger.Errorln("webhook failed: ", werr, " request: ", string(call.rawBody))
	} else {
		logger.Infoln("webhook rejected: ", werr)
	}

	logBody, _ := json.Marshal(errorLogBody(werr, call.rawBody))
	h.record(call, werr.status, false, logBody, false)
	writeRaw(c, werr.status, encodeJSON(errorResponse(werr, h.now())))
}

// record writes the ledger entry of a terminal outcome, before the response
// goes out. It uses its own
// context so that a caller hanging up after a success still gets the call
// recorded, otherwise its retry would run again.
func (h *Handler) record(call *webhookCall, status int, ok bool, body []byte, replayed bool) {
	ctx, cancel := context.WithTimeout(context.Background(), ledgerWriteTimeout)
	defer cancel()
	h.ledger.Record(ctx, ledger.Entry{
		Endpoint:       call.endpoint,
		IdempotencyKey: call.idemKey,
		StatusCode:     status,
		Ok:             ok,
		Body:           body,
	})
	h.metrics.ReportWebhookRequest(call.endpoint, status, replayed)
}
