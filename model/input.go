package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Inputs below mirror the webhook payloads, json tags are the wire names.

type ReviewQuoteInput struct {
	Author     *string  `json:"author,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Text       string   `json:"text"`
	ReviewedAt *string  `json:"reviewed_at,omitempty"`
}

type UpsertCreatorInput struct {
	InstagramHandle string                 `json:"instagram_handle"`
	DisplayName     string                 `json:"display_name"`
	InstagramUrl    string                 `json:"instagram_url"`
	AvatarUrl       *string                `json:"avatar_url,omitempty"`
	Bio             *string                `json:"bio,omitempty"`
	Links           map[string]interface{} `json:"links,omitempty"`
}

type UpsertPlaceInput struct {
	GooglePlaceId string             `json:"google_place_id"`
	Name          string             `json:"name"`
	MapsUrl       *string            `json:"maps_url,omitempty"`
	Lat           *float64           `json:"lat,omitempty"`
	Lng           *float64           `json:"lng,omitempty"`
	Address       *string            `json:"address,omitempty"`
	AvgRating     *float64           `json:"avg_rating,omitempty"`
	ReviewCount   *int               `json:"review_count,omitempty"`
	Neighborhood  *string            `json:"neighborhood,omitempty"`
	Cuisines      []string           `json:"cuisines,omitempty"`
	ReviewQuotes  []ReviewQuoteInput `json:"review_quotes,omitempty"`
}

type ArticleSourceInput struct {
	Platform string `json:"platform"`
	PostUrl  string `json:"post_url"`
	Username string `json:"username,omitempty"`
}

type RawContentInput struct {
	Caption    *string `json:"caption,omitempty"`
	Transcript *string `json:"transcript,omitempty"`
}

// CreateArticleInput is the body of articles.create.
type CreateArticleInput struct {
	Title    string             `json:"title"`
	Slug     string             `json:"slug,omitempty"`
	Excerpt  *string            `json:"excerpt,omitempty"`
	BodyHtml string             `json:"body_html"`
	Tags     []string           `json:"tags,omitempty"`
	Source   ArticleSourceInput `json:"source"`
	Creator  UpsertCreatorInput `json:"creator"`
	Place    UpsertPlaceInput   `json:"place"`
	Raw      *RawContentInput   `json:"raw,omitempty"`
}

type NewArticleFields struct {
	BodyHtml     string               `json:"body_html,omitempty"`
	Excerpt      string               `json:"excerpt,omitempty"`
	ReviewQuotes []ReviewQuoteInput   `json:"review_quotes,omitempty"`
	Sources      []ArticleSourceInput `json:"sources,omitempty"`
}

// MergeArticleInput is the body of articles.merge.
type MergeArticleInput struct {
	CanonicalArticleID string           `json:"canonical_article_id"`
	PlaceID            string           `json:"place_id"`
	NewArticleFields   NewArticleFields `json:"new_article_fields"`
}

// EncodeJSON marshals v into a JSON column value. A nil v is stored as SQL
// NULL.
func EncodeJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// DecodeStringList reads a JSON column holding a list of strings.
func DecodeStringList(col datatypes.JSON) []string {
	res := []string{}
	if len(col) == 0 {
		return res
	}
	if err := json.Unmarshal(col, &res); err != nil {
		return []string{}
	}
	return res
}
