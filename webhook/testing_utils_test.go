package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Luismorlan/nashbites/enhancer"
	"github.com/Luismorlan/nashbites/ingestion"
	"github.com/Luismorlan/nashbites/model"
	"github.com/Luismorlan/nashbites/utils"
	"github.com/Luismorlan/nashbites/webhook/auth"
	"github.com/Luismorlan/nashbites/webhook/ledger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testToken      = "test-webhook-token"
	testHMACSecret = "test-webhook-secret"
)

type fakeNotifier struct {
	duplicates chan enhancer.Duplicate
}

func (f *fakeNotifier) Name() string {
	return "fake"
}

func (f *fakeNotifier) NotifyDuplicate(ctx context.Context, dup enhancer.Duplicate) error {
	f.duplicates <- dup
	return nil
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	notifier *fakeNotifier
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	db, _ := utils.CreateTempDB(t)
	notifier := &fakeNotifier{duplicates: make(chan enhancer.Duplicate, 4)}

	h := NewHandler(
		auth.NewGate(auth.Config{BearerToken: testToken, HMACSecret: testHMACSecret}),
		ledger.New(db, model.WebhookSourceGumloop),
		ingestion.NewPipeline(db, nil),
	).WithNotifier(notifier, time.Second)

	router := gin.New()
	h.Register(router.Group("/hooks"))
	h.Register(router.Group("/api/hooks/gumloop"))
	return &testServer{router: router, db: db, notifier: notifier}
}

func (s *testServer) do(method string, path string, body string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	s.router.ServeHTTP(w, req)
	return w
}

// post sends body with a valid bearer token and the optional idempotency
// key.
func (s *testServer) post(path string, body string, idemKey string) *httptest.ResponseRecorder {
	header := http.Header{}
	header.Set(auth.AuthorizationHeader, "Bearer "+testToken)
	if idemKey != "" {
		header.Set(IdempotencyKeyHeader, idemKey)
	}
	return s.do(http.MethodPost, path, body, header)
}

func (s *testServer) count(t *testing.T, m interface{}) int64 {
	var n int64
	require.Nil(t, s.db.Model(m).Count(&n).Error)
	return n
}

func (s *testServer) logs(t *testing.T) []model.WebhookLog {
	var logs []model.WebhookLog
	require.Nil(t, s.db.Order("created_at asc").Find(&logs).Error)
	return logs
}

func articlePayload(title string, placeID string) map[string]interface{} {
	return map[string]interface{}{
		"title":     title,
		"excerpt":   "The best bird in town",
		"body_html": "<p>Y</p>",
		"source": map[string]interface{}{
			"platform": "instagram",
			"post_url": "https://www.instagram.com/p/abc123/",
			"username": "nashfoodie",
		},
		"creator": map[string]interface{}{
			"instagram_handle": "@nashfoodie",
			"display_name":     "Nash Foodie",
			"instagram_url":    "https://www.instagram.com/nashfoodie/",
		},
		"place": map[string]interface{}{
			"google_place_id": placeID,
			"name":            "Hattie B's",
			"lat":             36.1512,
			"lng":             -86.7962,
			"review_quotes": []map[string]interface{}{
				{"author": "Sam", "rating": 5, "text": "Best hot chicken"},
			},
		},
		"raw": map[string]interface{}{"caption": "hot chicken run"},
	}
}

func encode(t *testing.T, v interface{}) string {
	b, err := json.Marshal(v)
	require.Nil(t, err)
	return string(b)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
