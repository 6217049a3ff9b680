package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/Luismorlan/nashbites/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const recentReviewCount = 10

type groupCount struct {
	GroupKey string
	Count    int64
}

// countBy counts rows of m grouped by column, restricted to keys.
func countBy(db *gorm.DB, m interface{}, column string, keys []string) (map[string]int64, error) {
	res := map[string]int64{}
	if len(keys) == 0 {
		return res, nil
	}
	var rows []groupCount
	err := db.Model(m).
		Select(column+" AS group_key, COUNT(*) AS count").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		res[r.GroupKey] = r.Count
	}
	return res, nil
}

func publishedArticles(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", model.ArticleStatusPublished)
}

// ListPlaces pages through places, newest first.
func (a *API) ListPlaces(c *gin.Context) {
	ctx := c.Request.Context()
	limit := pageSize(c)
	query := a.DB.WithContext(ctx).Model(&model.Place{})

	if neighborhood := c.Query("neighborhood"); neighborhood != "" {
		query = query.Where("LOWER(neighborhood) = ?", strings.ToLower(neighborhood))
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		clause, arg := cuisineFilter("cuisines", cuisine)
		query = query.Where(clause, arg)
	}
	if cursor := c.Query("cursor"); cursor != "" {
		var last model.Place
		err := a.DB.WithContext(ctx).Where("id = ?", cursor).First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "Invalid cursor")
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", last.CreatedAt, last.CreatedAt, last.Id)
	}

	var places []model.Place
	if err := query.Order("created_at desc").Order("id desc").Limit(limit + 1).Find(&places).Error; err != nil {
		internalError(c, err)
		return
	}
	pagination := Pagination{Limit: limit, HasMore: len(places) > limit}
	if pagination.HasMore {
		places = places[:limit]
		pagination.NextCursor = &places[limit-1].Id
	}

	details, err := a.placeDetails(ctx, places)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": details, "pagination": pagination})
}

func (a *API) placeDetails(ctx context.Context, places []model.Place) ([]PlaceDetail, error) {
	ids := []string{}
	for _, p := range places {
		ids = append(ids, p.Id)
	}
	db := a.DB.WithContext(ctx)
	articleCounts, err := countBy(publishedArticles(db), &model.Article{}, "place_id", ids)
	if err != nil {
		return nil, err
	}
	quoteCounts, err := countBy(db, &model.ReviewQuote{}, "place_id", ids)
	if err != nil {
		return nil, err
	}

	res := []PlaceDetail{}
	for _, p := range places {
		detail, err := toPlaceDetail(p)
		if err != nil {
			return nil, err
		}
		detail.ArticleCount = articleCounts[p.Id]
		detail.ReviewQuoteCount = quoteCounts[p.Id]
		res = append(res, *detail)
	}
	return res, nil
}

func (a *API) GetPlace(c *gin.Context) {
	ctx := c.Request.Context()
	db := a.DB.WithContext(ctx)

	var place model.Place
	err := db.Where("id = ?", c.Param("placeId")).First(&place).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Place not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	details, err := a.placeDetails(ctx, []model.Place{place})
	if err != nil {
		internalError(c, err)
		return
	}
	detail := details[0]

	var articles []model.Article
	if err := publishedArticles(db).Preload("Creator").
		Where("place_id = ?", place.Id).
		Order("published_at desc").
		Find(&articles).Error; err != nil {
		internalError(c, err)
		return
	}
	if detail.Articles, err = toArticleSummaries(articles); err != nil {
		internalError(c, err)
		return
	}

	var quotes []model.ReviewQuote
	if err := db.Where("place_id = ?", place.Id).
		Order("reviewed_at desc").
		Limit(recentReviewCount).
		Find(&quotes).Error; err != nil {
		internalError(c, err)
		return
	}
	if detail.RecentReviews, err = toReviewQuotes(quotes); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": detail})
}
