package ingestion

import (
	"time"

	"github.com/Luismorlan/nashbites/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LogMergeEvent appends one audit row for a merge decision. payload is
// stored as JSON.
func LogMergeEvent(db *gorm.DB, canonicalID string, incomingID string, placeID string, payload interface{}) error {
	payloadJson, err := model.EncodeJSON(payload)
	if err != nil {
		return errors.Wrap(err, "fail to encode merge event payload")
	}
	event := model.MergeEvent{
		Id:                 uuid.New().String(),
		CanonicalArticleID: canonicalID,
		IncomingArticleID:  incomingID,
		PlaceID:            placeID,
		PayloadJson:        payloadJson,
	}
	return errors.Wrap(db.Create(&event).Error, "fail to write merge event")
}

// CreateSourcePost keeps the raw content an article was built from.
func CreateSourcePost(db *gorm.DB, input model.CreateArticleInput, creatorID string, placeID string, fetchedAt time.Time) error {
	var caption, transcript *string
	if input.Raw != nil {
		caption, transcript = input.Raw.Caption, input.Raw.Transcript
	}
	post := model.SourcePost{
		Id:         uuid.New().String(),
		Platform:   input.Source.Platform,
		PostUrl:    input.Source.PostUrl,
		Caption:    caption,
		Transcript: transcript,
		MediaType:  model.MediaTypeInstagramPost,
		MediaUrl:   input.Source.PostUrl,
		FetchedAt:  fetchedAt,
		Hash:       GenerateSourceHash(input.Source.PostUrl, caption, transcript),
		CreatorID:  creatorID,
		PlaceID:    placeID,
	}
	return errors.Wrap(db.Create(&post).Error, "fail to write source post")
}
