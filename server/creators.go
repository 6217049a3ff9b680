package server

import (
	"context"
	"net/http"

	"github.com/Luismorlan/nashbites/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListCreators pages through active creators, newest first.
func (a *API) ListCreators(c *gin.Context) {
	ctx := c.Request.Context()
	limit := pageSize(c)
	query := a.DB.WithContext(ctx).Where("is_active = ?", true)

	if cursor := c.Query("cursor"); cursor != "" {
		var last model.Creator
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

	var creators []model.Creator
	if err := query.Order("created_at desc").Order("id desc").Limit(limit + 1).Find(&creators).Error; err != nil {
		internalError(c, err)
		return
	}
	pagination := Pagination{Limit: limit, HasMore: len(creators) > limit}
	if pagination.HasMore {
		creators = creators[:limit]
		pagination.NextCursor = &creators[limit-1].Id
	}

	details, err := a.creatorDetails(ctx, creators)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creators": details, "pagination": pagination})
}

func (a *API) creatorDetails(ctx context.Context, creators []model.Creator) ([]CreatorDetail, error) {
	ids := []string{}
	for _, cr := range creators {
		ids = append(ids, cr.Id)
	}
	counts, err := countBy(publishedArticles(a.DB.WithContext(ctx)), &model.Article{}, "creator_id", ids)
	if err != nil {
		return nil, err
	}
	res := []CreatorDetail{}
	for _, cr := range creators {
		detail, err := toCreatorDetail(cr)
		if err != nil {
			return nil, err
		}
		detail.ArticleCount = counts[cr.Id]
		res = append(res, *detail)
	}
	return res, nil
}

func (a *API) GetCreator(c *gin.Context) {
	ctx := c.Request.Context()
	db := a.DB.WithContext(ctx)

	var creator model.Creator
	err := db.Where("instagram_handle = ? AND is_active = ?", c.Param("handle"), true).First(&creator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Creator not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	details, err := a.creatorDetails(ctx, []model.Creator{creator})
	if err != nil {
		internalError(c, err)
		return
	}
	detail := details[0]

	var articles []model.Article
	if err := publishedArticles(db).Preload("Place").
		Where("creator_id = ?", creator.Id).
		Order("published_at desc").
		Find(&articles).Error; err != nil {
		internalError(c, err)
		return
	}
	if detail.Articles, err = toArticleSummaries(articles); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creator": detail})
}
