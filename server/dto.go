package server

import (
	"time"

	"github.com/Luismorlan/nashbites/model"
	"github.com/Luismorlan/nashbites/utils"
	"github.com/jinzhu/copier"
)

const excerptSnippetLength = 160

// Response shapes of the public api. Flat fields are filled by copier from
// the models, nested ones by hand.

type Pagination struct {
	Limit      int     `json:"limit"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CreatorSummary struct {
	Id              string  `json:"id"`
	DisplayName     string  `json:"display_name"`
	InstagramHandle string  `json:"instagram_handle"`
	AvatarUrl       *string `json:"avatar_url"`
}

type CreatorDetail struct {
	Id              string           `json:"id"`
	DisplayName     string           `json:"display_name"`
	InstagramHandle string           `json:"instagram_handle"`
	InstagramUrl    string           `json:"instagram_url"`
	AvatarUrl       *string          `json:"avatar_url"`
	Bio             *string          `json:"bio"`
	ArticleCount    int64            `json:"article_count" copier:"-"`
	CreatedAt       time.Time        `json:"created_at"`
	Articles        []ArticleSummary `json:"articles,omitempty" copier:"-"`
}

type PlaceSummary struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Neighborhood *string  `json:"neighborhood"`
	Cuisines     []string `json:"cuisines" copier:"-"`
	AvgRating    *float64 `json:"avg_rating"`
}

type PlaceDetail struct {
	Id               string           `json:"id"`
	GooglePlaceId    string           `json:"google_place_id"`
	Name             string           `json:"name"`
	Address          *string          `json:"address"`
	Neighborhood     *string          `json:"neighborhood"`
	Cuisines         []string         `json:"cuisines" copier:"-"`
	AvgRating        *float64         `json:"avg_rating"`
	ReviewCount      *int             `json:"review_count"`
	MapsUrl          *string          `json:"maps_url"`
	Coordinates      *Coordinates     `json:"coordinates" copier:"-"`
	ArticleCount     int64            `json:"article_count" copier:"-"`
	ReviewQuoteCount int64            `json:"review_quote_count" copier:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	Articles         []ArticleSummary `json:"articles,omitempty" copier:"-"`
	RecentReviews    []ReviewQuote    `json:"recent_reviews,omitempty" copier:"-"`
}

type ReviewQuote struct {
	Id         string     `json:"id"`
	Author     *string    `json:"author"`
	Rating     *float64   `json:"rating"`
	Text       string     `json:"text"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	Source     string     `json:"source"`
}

type ArticleSummary struct {
	Id            string          `json:"id"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Excerpt       string          `json:"excerpt" copier:"-"`
	PublishedAt   *time.Time      `json:"published_at"`
	SourcePostUrl string          `json:"source_post_url"`
	Creator       *CreatorSummary `json:"creator,omitempty" copier:"-"`
	Place         *PlaceSummary   `json:"place,omitempty" copier:"-"`
}

type ArticleDetail struct {
	Id             string         `json:"id"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Excerpt        string         `json:"excerpt" copier:"-"`
	BodyHtml       string         `json:"body_html"`
	PublishedAt    *time.Time     `json:"published_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	SourcePlatform string         `json:"source_platform"`
	SourcePostUrl  string         `json:"source_post_url"`
	Creator        *CreatorDetail `json:"creator" copier:"-"`
	Place          *PlaceDetail   `json:"place" copier:"-"`
}

// excerptOf falls back to the start of the body when no excerpt was
// submitted.
func excerptOf(article model.Article) string {
	if article.Excerpt != nil && *article.Excerpt != "" {
		return *article.Excerpt
	}
	return utils.TextSnippet(article.BodyHtml, excerptSnippetLength)
}

func coordinatesOf(place model.Place) *Coordinates {
	if place.Lat == nil || place.Lng == nil {
		return nil
	}
	return &Coordinates{Lat: *place.Lat, Lng: *place.Lng}
}

func toCreatorSummary(creator *model.Creator) (*CreatorSummary, error) {
	if creator == nil {
		return nil, nil
	}
	res := &CreatorSummary{}
	if err := copier.Copy(res, creator); err != nil {
		return nil, err
	}
	return res, nil
}

func toCreatorDetail(creator model.Creator) (*CreatorDetail, error) {
	res := &CreatorDetail{}
	if err := copier.Copy(res, &creator); err != nil {
		return nil, err
	}
	return res, nil
}

func toPlaceSummary(place *model.Place) (*PlaceSummary, error) {
	if place == nil {
		return nil, nil
	}
	res := &PlaceSummary{}
	if err := copier.Copy(res, place); err != nil {
		return nil, err
	}
	res.Cuisines = place.CuisineList()
	return res, nil
}

func toPlaceDetail(place model.Place) (*PlaceDetail, error) {
	res := &PlaceDetail{}
	if err := copier.Copy(res, &place); err != nil {
		return nil, err
	}
	res.Cuisines = place.CuisineList()
	res.Coordinates = coordinatesOf(place)
	return res, nil
}

func toReviewQuotes(quotes []model.ReviewQuote) ([]ReviewQuote, error) {
	res := []ReviewQuote{}
	if err := copier.Copy(&res, &quotes); err != nil {
		return nil, err
	}
	return res, nil
}

func toArticleSummary(article model.Article) (ArticleSummary, error) {
	res := ArticleSummary{}
	if err := copier.Copy(&res, &article); err != nil {
		return res, err
	}
	res.Excerpt = excerptOf(article)
	var err error
	if res.Creator, err = toCreatorSummary(article.Creator); err != nil {
		return res, err
	}
	if res.Place, err = toPlaceSummary(article.Place); err != nil {
		return res, err
	}
	return res, nil
}

func toArticleSummaries(articles []model.Article) ([]ArticleSummary, error) {
	res := []ArticleSummary{}
	for _, a := range articles {
		summary, err := toArticleSummary(a)
		if err != nil {
			return nil, err
		}
		res = append(res, summary)
	}
	return res, nil
}

func toArticleDetail(article model.Article) (*ArticleDetail, error) {
	res := &ArticleDetail{}
	if err := copier.Copy(res, &article); err != nil {
		return nil, err
	}
	res.Excerpt = excerptOf(article)
	if article.Creator != nil {
		creator, err := toCreatorDetail(*article.Creator)
		if err != nil {
			return nil, err
		}
		res.Creator = creator
	}
	if article.Place != nil {
		place, err := toPlaceDetail(*article.Place)
		if err != nil {
			return nil, err
		}
		res.Place = place
	}
	return res, nil
}
