package ingestion

import (
	"context"

	"github.com/Luismorlan/nashbites/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DuplicateCheck struct {
	IsDuplicate bool
	Canonical   *model.Article
}

// CheckDuplicate looks up the canonical article of a place: the oldest
// published article. First writer wins, a later submission never takes over.
// Canonical status is computed by this query every time and is not stored.
func CheckDuplicate(db *gorm.DB, placeID string) (DuplicateCheck, error) {
	var articles []model.Article
	err := db.Where("place_id = ? AND status = ?", placeID, model.ArticleStatusPublished).
		Order("created_at asc").
		Order("id asc").
		Limit(1).
		Find(&articles).Error
	if err != nil {
		return DuplicateCheck{}, errors.Wrap(err, "fail to check duplicate article for place "+placeID)
	}
	if len(articles) == 0 {
		return DuplicateCheck{IsDuplicate: false}, nil
	}
	return DuplicateCheck{IsDuplicate: true, Canonical: &articles[0]}, nil
}

func (p *Pipeline) CheckDuplicate(ctx context.Context, placeID string) (DuplicateCheck, error) {
	return CheckDuplicate(p.DB.WithContext(ctx), placeID)
}
