package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

type enhancerSource struct {
	Platform string `json:"platform"`
	PostUrl  string `json:"post_url"`
}

type enhancerFields struct {
	BodyHtml string           `json:"body_html"`
	Excerpt  *string          `json:"excerpt,omitempty"`
	Sources  []enhancerSource `json:"sources"`
}

type enhancerPayload struct {
	CanonicalArticleID string         `json:"canonical_article_id"`
	NewArticleFields   enhancerFields `json:"new_article_fields"`
}

// HttpNotifier posts duplicates to the enhancer service, which decides
// whether to call articles.merge back.
type HttpNotifier struct {
	url    string
	client *HttpClient
}

func NewHttpNotifier(url string, secret string, timeout time.Duration) *HttpNotifier {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+secret)
	return &HttpNotifier{url: url, client: NewHttpClient(header, timeout)}
}

func (n *HttpNotifier) Name() string {
	return "enhancer"
}

func (n *HttpNotifier) NotifyDuplicate(ctx context.Context, dup Duplicate) error {
	payload := enhancerPayload{
		CanonicalArticleID: dup.CanonicalArticleID,
		NewArticleFields: enhancerFields{
			BodyHtml: dup.Input.BodyHtml,
			Excerpt:  dup.Input.Excerpt,
			Sources: []enhancerSource{{
				Platform: dup.Input.Source.Platform,
				PostUrl:  dup.Input.Source.PostUrl,
			}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "fail to encode enhancer payload")
	}
	res, err := n.client.Post(ctx, n.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "fail to notify enhancer")
	}
	res.Body.Close()
	return nil
}
