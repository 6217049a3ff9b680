package ingestion

import (
	"testing"
	"time"

	"github.com/Luismorlan/nashbites/model"
	"github.com/Luismorlan/nashbites/utils"
	"gorm.io/gorm"
)

func newTestPipeline(t *testing.T) (*Pipeline, *gorm.DB) {
	db, _ := utils.CreateTempDB(t)
	p := NewPipeline(db, nil)
	// Strictly increasing clock so ordering by time is deterministic.
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return p, db
}

func floatPtr(f float64) *float64 {
	return &f
}

func stringPtr(s string) *string {
	return &s
}

func testCreateInput(title string, placeID string) model.CreateArticleInput {
	return model.CreateArticleInput{
		Title:    title,
		BodyHtml: "<p>Crispy, spicy, perfect.</p>",
		Excerpt:  stringPtr("The best bird in town"),
		Source: model.ArticleSourceInput{
			Platform: "instagram",
			PostUrl:  "https://www.instagram.com/p/abc123/",
			Username: "nashfoodie",
		},
		Creator: model.UpsertCreatorInput{
			InstagramHandle: "nashfoodie",
			DisplayName:     "Nash Foodie",
			InstagramUrl:    "https://www.instagram.com/nashfoodie/",
		},
		Place: model.UpsertPlaceInput{
			GooglePlaceId: placeID,
			Name:          "Hattie B's",
			Lat:           floatPtr(36.1512),
			Lng:           floatPtr(-86.7962),
			Cuisines:      []string{"Southern", "Hot Chicken"},
		},
		Raw: &model.RawContentInput{Caption: stringPtr("hot chicken run")},
	}
}
