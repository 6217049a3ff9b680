// Package ingestion turns webhook submissions into canonical articles. It owns
// every write to creators, places, articles, source posts, review quotes and
// merge events.
//
// Writes on the primary path (creator, place, article) abort the call on
// failure. Secondary writes (source post, review quotes, merge events) are
// best-effort: they are attempted after the primary path commits, failures
// are logged and returned as SideEffect values but never fail the call.
package ingestion

import (
	"time"

	"github.com/Luismorlan/nashbites/utils"
	. "github.com/Luismorlan/nashbites/utils/log"
	"gorm.io/gorm"
)

type Pipeline struct {
	DB      *gorm.DB
	Metrics *utils.MetricsReporter

	now func() time.Time
}

func NewPipeline(db *gorm.DB, metrics *utils.MetricsReporter) *Pipeline {
	return &Pipeline{
		DB:      db,
		Metrics: metrics,
		now:     time.Now,
	}
}

// SideEffect is the outcome of a best-effort write.
type SideEffect struct {
	Name string
	Err  error
}

func (s SideEffect) Failed() bool {
	return s.Err != nil
}

const (
	SideEffectReviewQuotes = "review_quotes"
	SideEffectSourcePost   = "source_post"
	SideEffectMergeEvent   = "merge_event"
)

// bestEffort runs fn and swallows its error after logging it.
func (p *Pipeline) bestEffort(name string, fn func() error) SideEffect {
	err := fn()
	if err != nil {
		Log.WithField("side_effect", name).Errorln("best-effort write failed: ", err)
		p.Metrics.ReportSideEffectFailure(name)
	}
	return SideEffect{Name: name, Err: err}
}

// FailedSideEffects filters effects down to the failed ones.
func FailedSideEffects(effects []SideEffect) []SideEffect {
	failed := []SideEffect{}
	for _, e := range effects {
		if e.Failed() {
			failed = append(failed, e)
		}
	}
	return failed
}
