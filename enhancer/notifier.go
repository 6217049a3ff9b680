// Package enhancer tells downstream systems that a submission was rejected as
// a duplicate, so that its content can be folded into the canonical article
// later. Notifications are fire-and-forget: they never affect the webhook
// response.
package enhancer

import (
	"context"
	"time"

	"github.com/Luismorlan/nashbites/model"
	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/sirupsen/logrus"
)

// Duplicate describes a submission whose place already had a canonical
// article.
type Duplicate struct {
	CanonicalArticleID string
	PlaceID            string
	Input              model.CreateArticleInput
}

type Notifier interface {
	Name() string
	NotifyDuplicate(ctx context.Context, dup Duplicate) error
}

// MultiNotifier fans a notification out to every notifier. Failures of one
// notifier don't stop the others.
type MultiNotifier []Notifier

func (m MultiNotifier) Name() string {
	return "multi"
}

func (m MultiNotifier) NotifyDuplicate(ctx context.Context, dup Duplicate) error {
	var firstErr error
	for _, n := range m {
		if err := n.NotifyDuplicate(ctx, dup); err != nil {
			Log.WithField("notifier", n.Name()).Errorln("fail to notify duplicate: ", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Dispatch notifies in the background with its own deadline, detached from
// the request that triggered it. The returned channel is closed once the
// notification finished, callers are free to ignore it.
func Dispatch(notifier Notifier, timeout time.Duration, dup Duplicate) <-chan struct{} {
	done := make(chan struct{})
	if notifier == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				Log.Errorln("notifier panicked: ", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger := Log.WithFields(logrus.Fields{
			"notifier":             notifier.Name(),
			"canonical_article_id": dup.CanonicalArticleID,
		})
		if err := notifier.NotifyDuplicate(ctx, dup); err != nil {
			logger.Errorln("fail to notify duplicate: ", err)
			return
		}
		logger.Infoln("notified duplicate article")
	}()
	return done
}
