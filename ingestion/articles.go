package ingestion

import (
	"context"

	"github.com/Luismorlan/nashbites/model"
	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateResult describes what articles.create did. Exactly one of Canonical
// and Duplicate is true.
type CreateResult struct {
	Canonical bool
	ArticleID string
	Slug      string

	Duplicate          bool
	CanonicalArticleID string

	CreatorID string
	PlaceID   string

	SideEffects []SideEffect
}

// CreateArticle runs the ingestion state machine for one submission.
//
// Creator, place, duplicate check and article insert share one transaction,
// a failure there rolls everything back. When the place already has a
// published article the submission is not stored, a merge event pointing at
// the canonical article is written instead.
//
// Two submissions for the same new place racing each other can both see no
// canonical article, the transaction narrows that window but does not close
// it.
func (p *Pipeline) CreateArticle(ctx context.Context, input model.CreateArticleInput) (*CreateResult, error) {
	db := p.DB.WithContext(ctx)
	result := &CreateResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		creator, err := UpsertCreator(tx, input.Creator)
		if err != nil {
			return err
		}
		place, err := UpsertPlace(tx, input.Place)
		if err != nil {
			return err
		}
		result.CreatorID, result.PlaceID = creator.Id, place.Id

		check, err := CheckDuplicate(tx, place.Id)
		if err != nil {
			return err
		}
		if check.IsDuplicate {
			result.Duplicate = true
			result.CanonicalArticleID = check.Canonical.Id
			return nil
		}

		base := input.Slug
		if base == "" {
			base = input.Title
		}
		slug, err := EnsureUniqueSlug(tx, GenerateSlug(base))
		if err != nil {
			return err
		}

		now := p.now()
		article := model.Article{
			Id:             uuid.New().String(),
			CreatedAt:      now,
			UpdatedAt:      now,
			Slug:           slug,
			Title:          input.Title,
			Excerpt:        input.Excerpt,
			BodyHtml:       input.BodyHtml,
			Status:         model.ArticleStatusPublished,
			PublishedAt:    &now,
			SourcePlatform: input.Source.Platform,
			SourcePostUrl:  input.Source.PostUrl,
			SourceUsername: input.Source.Username,
			CreatorID:      creator.Id,
			PlaceID:        place.Id,
		}
		if err := tx.Create(&article).Error; err != nil {
			return errors.Wrap(err, "fail to create article "+slug)
		}
		result.Canonical = true
		result.ArticleID = article.Id
		result.Slug = article.Slug
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(input.Place.ReviewQuotes) > 0 {
		result.SideEffects = append(result.SideEffects, p.bestEffort(SideEffectReviewQuotes, func() error {
			return AddReviewQuotes(db, result.PlaceID, input.Place.ReviewQuotes, model.ReviewQuoteSourceGoogle)
		}))
	}

	if result.Duplicate {
		Log.WithField("place_id", result.PlaceID).
			Infoln("duplicate submission for canonical article ", result.CanonicalArticleID)
		result.SideEffects = append(result.SideEffects, p.bestEffort(SideEffectMergeEvent, func() error {
			return LogMergeEvent(db, result.CanonicalArticleID, model.IncomingArticleIdPlaceholder, result.PlaceID, input)
		}))
		return result, nil
	}

	result.SideEffects = append(result.SideEffects, p.bestEffort(SideEffectSourcePost, func() error {
		return CreateSourcePost(db, input, result.CreatorID, result.PlaceID, p.now())
	}))
	return result, nil
}
