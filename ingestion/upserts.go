package ingestion

import (
	"context"
	"strings"
	"time"

	"github.com/Luismorlan/nashbites/model"
	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertCreator creates or refreshes the creator keyed by its Instagram
// handle. Optional fields absent from input keep their stored value, the
// creator is always re-activated.
func UpsertCreator(db *gorm.DB, input model.UpsertCreatorInput) (*model.Creator, error) {
	creator := model.Creator{
		Id:              uuid.New().String(),
		InstagramHandle: input.InstagramHandle,
		DisplayName:     input.DisplayName,
		InstagramUrl:    input.InstagramUrl,
		AvatarUrl:       input.AvatarUrl,
		Bio:             input.Bio,
		IsActive:        true,
	}
	updates := []string{"display_name", "instagram_url", "is_active", "updated_at"}
	if input.AvatarUrl != nil {
		updates = append(updates, "avatar_url")
	}
	if input.Bio != nil {
		updates = append(updates, "bio")
	}
	if input.Links != nil {
		links, err := model.EncodeJSON(input.Links)
		if err != nil {
			return nil, errors.Wrap(err, "invalid creator links")
		}
		creator.Links = links
		updates = append(updates, "links")
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "instagram_handle"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&creator).Error
	if err != nil {
		return nil, errors.Wrap(err, "fail to upsert creator "+input.InstagramHandle)
	}

	// On conflict the generated id is discarded, read back the stored row.
	var stored model.Creator
	if err := db.Where("instagram_handle = ?", input.InstagramHandle).First(&stored).Error; err != nil {
		return nil, errors.Wrap(err, "fail to read upserted creator "+input.InstagramHandle)
	}
	return &stored, nil
}

// UpsertPlace creates or refreshes the place keyed by its Google Place ID.
// Review quotes are not handled here, see AddReviewQuotes.
func UpsertPlace(db *gorm.DB, input model.UpsertPlaceInput) (*model.Place, error) {
	cuisines := input.Cuisines
	if cuisines == nil {
		cuisines = []string{}
	}
	cuisinesCol, err := model.EncodeJSON(cuisines)
	if err != nil {
		return nil, errors.Wrap(err, "invalid place cuisines")
	}

	place := model.Place{
		Id:            uuid.New().String(),
		GooglePlaceId: input.GooglePlaceId,
		Name:          input.Name,
		MapsUrl:       input.MapsUrl,
		Lat:           input.Lat,
		Lng:           input.Lng,
		Address:       input.Address,
		AvgRating:     input.AvgRating,
		ReviewCount:   input.ReviewCount,
		Neighborhood:  input.Neighborhood,
		Cuisines:      cuisinesCol,
	}

	updates := []string{"name", "updated_at"}
	optional := []struct {
		column  string
		present bool
	}{
		{"maps_url", input.MapsUrl != nil},
		{"lat", input.Lat != nil},
		{"lng", input.Lng != nil},
		{"address", input.Address != nil},
		{"avg_rating", input.AvgRating != nil},
		{"review_count", input.ReviewCount != nil},
		{"neighborhood", input.Neighborhood != nil},
		{"cuisines", input.Cuisines != nil},
	}
	for _, o := range optional {
		if o.present {
			updates = append(updates, o.column)
		}
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_place_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&place).Error
	if err != nil {
		return nil, errors.Wrap(err, "fail to upsert place "+input.GooglePlaceId)
	}

	var stored model.Place
	if err := db.Where("google_place_id = ?", input.GooglePlaceId).First(&stored).Error; err != nil {
		return nil, errors.Wrap(err, "fail to read upserted place "+input.GooglePlaceId)
	}
	return &stored, nil
}

// AddReviewQuotes inserts the quotes not yet stored for the place, comparing
// by exact text. Existing quotes are never updated. It stops at the first
// storage error.
func AddReviewQuotes(db *gorm.DB, placeID string, quotes []model.ReviewQuoteInput, source string) error {
	for _, q := range quotes {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		var count int64
		if err := db.Model(&model.ReviewQuote{}).
			Where("place_id = ? AND text = ?", placeID, q.Text).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "fail to look up review quote")
		}
		if count > 0 {
			continue
		}
		quote := model.ReviewQuote{
			Id:         uuid.New().String(),
			PlaceID:    placeID,
			Author:     q.Author,
			Rating:     q.Rating,
			Text:       q.Text,
			ReviewedAt: parseReviewedAt(q.ReviewedAt),
			Source:     source,
		}
		if err := db.Create(&quote).Error; err != nil {
			return errors.Wrap(err, "fail to insert review quote")
		}
	}
	return nil
}

// Review dates come from scraped pages in whatever format the page used.
func parseReviewedAt(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	t, err := dateparse.ParseAny(*raw)
	if err != nil {
		Log.Infoln("drop unparsable reviewed_at: ", *raw)
		return nil
	}
	return &t
}

// UpsertCreator is the creators.upsert entry point.
func (p *Pipeline) UpsertCreator(ctx context.Context, input model.UpsertCreatorInput) (*model.Creator, error) {
	return UpsertCreator(p.DB.WithContext(ctx), input)
}

// UpsertPlace refreshes the place then adds its review quotes as a
// best-effort write.
func (p *Pipeline) UpsertPlace(ctx context.Context, input model.UpsertPlaceInput) (*model.Place, []SideEffect, error) {
	db := p.DB.WithContext(ctx)
	place, err := UpsertPlace(db, input)
	if err != nil {
		return nil, nil, err
	}
	effects := []SideEffect{}
	if len(input.ReviewQuotes) > 0 {
		effects = append(effects, p.bestEffort(SideEffectReviewQuotes, func() error {
			return AddReviewQuotes(db, place.Id, input.ReviewQuotes, model.ReviewQuoteSourceGoogle)
		}))
	}
	return place, effects, nil
}
