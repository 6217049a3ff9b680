package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// IncomingArticleIdPlaceholder marks a merge event written when a new
	// submission collides with a canonical article. No article row exists for
	// the incoming submission.
	IncomingArticleIdPlaceholder = "incoming-article-id"
	// IncomingMergedContent marks a merge event written by articles.merge.
	IncomingMergedContent = "merged-content"
)

// MergeEvent is an append-only audit record, one per merge decision. Rows are
// never updated nor deleted.
type MergeEvent struct {
	Id                 string         `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	CanonicalArticleID string         `gorm:"index;not null" json:"canonical_article_id"`
	IncomingArticleID  string         `json:"incoming_article_id"`
	PlaceID            string         `gorm:"index" json:"place_id"`
	PayloadJson        datatypes.JSON `json:"payload_json"`
}
