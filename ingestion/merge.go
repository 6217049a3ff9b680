package ingestion

import (
	"context"

	"github.com/Luismorlan/nashbites/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UpdateHeading separates a merged body from the existing one.
const UpdateHeading = "\n\n<h2>Update</h2>\n"

type MergeResult struct {
	Updated            bool
	CanonicalArticleID string
	SideEffects        []SideEffect
}

// MergeArticle folds new content into the canonical article. The body is
// appended under an "Update" heading, never replaced. The excerpt is replaced
// only by a non-empty one. Review quotes go through the same per-place text
// dedup as place upserts. Every call writes one merge event.
func (p *Pipeline) MergeArticle(ctx context.Context, input model.MergeArticleInput) (*MergeResult, error) {
	db := p.DB.WithContext(ctx)
	fields := input.NewArticleFields

	var canonical model.Article
	err := db.Where("id = ?", input.CanonicalArticleID).First(&canonical).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(ErrCanonicalNotFound, input.CanonicalArticleID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "fail to load canonical article "+input.CanonicalArticleID)
	}

	updates := map[string]interface{}{"updated_at": p.now()}
	if fields.BodyHtml != "" {
		// Append in SQL so two merges landing together both keep their text.
		updates["body_html"] = gorm.Expr("body_html || ?", UpdateHeading+fields.BodyHtml)
	}
	if fields.Excerpt != "" {
		updates["excerpt"] = fields.Excerpt
	}
	if err := db.Model(&canonical).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "fail to update canonical article "+canonical.Id)
	}

	result := &MergeResult{Updated: true, CanonicalArticleID: canonical.Id}
	if len(fields.ReviewQuotes) > 0 {
		result.SideEffects = append(result.SideEffects, p.bestEffort(SideEffectReviewQuotes, func() error {
			return AddReviewQuotes(db, input.PlaceID, fields.ReviewQuotes, model.ReviewQuoteSourceMerged)
		}))
	}
	result.SideEffects = append(result.SideEffects, p.bestEffort(SideEffectMergeEvent, func() error {
		return LogMergeEvent(db, canonical.Id, model.IncomingMergedContent, input.PlaceID, fields)
	}))
	return result, nil
}
