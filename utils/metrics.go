package utils

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	. "github.com/Luismorlan/nashbites/utils/log"
)

const (
	metricsNamespace      = "nashbites."
	WebhookRequestCounter = "webhook.request"
	SideEffectFailCounter = "ingestion.side_effect_failure"
)

// MetricsReporter sends counters to the Datadog agent. A nil reporter is
// valid and drops everything, which is what tests and local runs use.
type MetricsReporter struct {
	Statsd statsd.ClientInterface
}

func NewMetricsReporter(addr string) (*MetricsReporter, error) {
	client, err := statsd.New(addr, statsd.WithNamespace(metricsNamespace))
	if err != nil {
		return nil, err
	}
	return &MetricsReporter{Statsd: client}, nil
}

// ReportWebhookRequest counts one terminal webhook response.
func (m *MetricsReporter) ReportWebhookRequest(endpoint string, status int, replayed bool) {
	if m == nil || m.Statsd == nil {
		return
	}
	err := m.Statsd.Incr(WebhookRequestCounter,
		[]string{
			"endpoint:" + endpoint,
			fmt.Sprintf("status:%d", status),
			fmt.Sprintf("replayed:%t", replayed),
		}, 1)
	if err != nil {
		Log.Infoln("cannot report webhook request")
	}
}

// ReportSideEffectFailure counts one failed best-effort write.
func (m *MetricsReporter) ReportSideEffectFailure(name string) {
	if m == nil || m.Statsd == nil {
		return
	}
	if err := m.Statsd.Incr(SideEffectFailCounter, []string{"side_effect:" + name}, 1); err != nil {
		Log.Infoln("cannot report side effect failure")
	}
}

func (m *MetricsReporter) Close() {
	if m == nil || m.Statsd == nil {
		return
	}
	m.Statsd.Close()
}
