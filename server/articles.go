package server

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/nashbites/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cuisineFilter matches a JSON list of strings containing cuisine. It works on
// both the postgres jsonb and the sqlite text rendering of the column.
func cuisineFilter(column string, cuisine string) (string, string) {
	return "CAST(" + column + " AS TEXT) LIKE ?", `%"` + cuisine + `"%`
}

// ListArticles pages through published articles, newest first. The cursor is
// the id of the last article of the previous page.
func (a *API) ListArticles(c *gin.Context) {
	limit := pageSize(c)
	query := a.DB.WithContext(c.Request.Context()).
		Model(&model.Article{}).
		Select("articles.*").
		Joins("JOIN creators ON creators.id = articles.creator_id").
		Joins("JOIN places ON places.id = articles.place_id").
		Where("articles.status = ?", model.ArticleStatusPublished)

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"LOWER(articles.title) LIKE ? OR LOWER(articles.excerpt) LIKE ? OR LOWER(creators.display_name) LIKE ? OR LOWER(places.name) LIKE ?",
			like, like, like, like)
	}
	if neighborhood := c.Query("neighborhood"); neighborhood != "" {
		query = query.Where("LOWER(places.neighborhood) = ?", strings.ToLower(neighborhood))
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		clause, arg := cuisineFilter("places.cuisines", cuisine)
		query = query.Where(clause, arg)
	}
	if cursor := c.Query("cursor"); cursor != "" {
		var last model.Article
		err := a.DB.WithContext(c.Request.Context()).Where("id = ?", cursor).First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "Invalid cursor")
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		query = query.Where(
			"articles.published_at < ? OR (articles.published_at = ? AND articles.id < ?)",
			last.PublishedAt, last.PublishedAt, last.Id)
	}

	var articles []model.Article
	err := query.
		Preload("Creator").
		Preload("Place").
		Order("articles.published_at desc").
		Order("articles.id desc").
		Limit(limit + 1).
		Find(&articles).Error
	if err != nil {
		internalError(c, err)
		return
	}

	pagination := Pagination{Limit: limit, HasMore: len(articles) > limit}
	if pagination.HasMore {
		articles = articles[:limit]
		pagination.NextCursor = &articles[limit-1].Id
	}
	summaries, err := toArticleSummaries(articles)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": summaries, "pagination": pagination})
}

func (a *API) GetArticle(c *gin.Context) {
	var article model.Article
	err := a.DB.WithContext(c.Request.Context()).
		Preload("Creator").
		Preload("Place").
		Where("slug = ? AND status = ?", c.Param("slug"), model.ArticleStatusPublished).
		First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Article not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	detail, err := toArticleDetail(article)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": detail})
}
