package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleRequiredFields = []string{
	"title",
	"body_html",
	"source.platform",
	"source.post_url",
	"source.username",
	"creator.instagram_handle",
	"creator.display_name",
	"creator.instagram_url",
	"place.google_place_id",
	"place.name",
}

const fullArticle = `{
	"title": "Best hot chicken",
	"body_html": "<p>Y</p>",
	"source": {"platform": "instagram", "post_url": "https://instagram.com/p/1", "username": "nashfoodtours"},
	"creator": {"instagram_handle": "nashfoodtours", "display_name": "Nash Food Tours", "instagram_url": "https://instagram.com/nashfoodtours"},
	"place": {"google_place_id": "ChIJ1", "name": "Prince's"}
}`

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	require.Nil(t, err)
	return v
}

func TestMissingFieldsNoneMissing(t *testing.T) {
	assert.Equal(t, []string{}, MissingFields(mustParse(t, fullArticle), articleRequiredFields))
}

func TestMissingFieldsSinglePath(t *testing.T) {
	body := strings.Replace(fullArticle, `"google_place_id": "ChIJ1", `, "", 1)
	assert.Equal(t, []string{"place.google_place_id"}, MissingFields(mustParse(t, body), articleRequiredFields))
}

func TestMissingFieldsReportsAll(t *testing.T) {
	missing := MissingFields(mustParse(t, `{"title":"","body_html":null,"source":"instagram"}`), articleRequiredFields)
	assert.Equal(t, articleRequiredFields, missing)
}

func TestMissingFieldsZeroAndFalseArePresent(t *testing.T) {
	v := mustParse(t, `{"canonical_article_id":0,"place_id":false,"new_article_fields":{}}`)
	assert.Equal(t, []string{}, MissingFields(v, []string{"canonical_article_id", "place_id", "new_article_fields"}))
}

func TestMissingFieldsNonObjectPayload(t *testing.T) {
	assert.Equal(t, []string{"title"}, MissingFields(mustParse(t, `[1,2]`), []string{"title"}))
	assert.Equal(t, []string{"title"}, MissingFields(mustParse(t, `"title"`), []string{"title"}))
}

func TestNormalizeInstagramHandle(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		handle string
		valid  bool
	}{
		{"nash_food.tours", "nash_food.tours", true},
		{"@nashfoodtours", "nashfoodtours", true},
		{"nash food", "nash food", false},
		{strings.Repeat("a", 30), strings.Repeat("a", 30), true},
		{strings.Repeat("a", 31), strings.Repeat("a", 31), false},
		{"@", "", false},
		{"@@double", "@double", false},
		{"emoji🍗", "emoji🍗", false},
	} {
		handle, valid := NormalizeInstagramHandle(tc.raw)
		assert.Equal(t, tc.handle, handle, tc.raw)
		assert.Equal(t, tc.valid, valid, tc.raw)
	}
}
