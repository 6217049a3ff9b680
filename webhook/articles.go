package webhook

import (
	"context"
	"net/http"
	"strings"

	"github.com/Luismorlan/nashbites/enhancer"
	"github.com/Luismorlan/nashbites/ingestion"
	"github.com/Luismorlan/nashbites/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	createArticleRequiredFields = []string{
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
	mergeArticleRequiredFields = []string{
		"canonical_article_id",
		"place_id",
		"new_article_fields",
	}
)

func (h *Handler) createArticle(ctx context.Context, call *webhookCall) (int, gin.H, error) {
	var input model.CreateArticleInput
	if err := call.decode(&input); err != nil {
		return 0, nil, err
	}
	// Same creator whether or not the caller kept the "@".
	input.Creator.InstagramHandle = strings.TrimPrefix(input.Creator.InstagramHandle, "@")

	result, err := h.pipeline.CreateArticle(ctx, input)
	if err != nil {
		return 0, nil, &webhookError{
			status:  http.StatusInternalServerError,
			message: "Failed to create article",
			code:    CodeCreationFailed,
			cause:   err,
		}
	}

	if result.Duplicate {
		enhancer.Dispatch(h.notifier, h.notifyTimeout, enhancer.Duplicate{
			CanonicalArticleID: result.CanonicalArticleID,
			PlaceID:            result.PlaceID,
			Input:              input,
		})
		return http.StatusAccepted, gin.H{
			"duplicate":            true,
			"canonical_article_id": result.CanonicalArticleID,
			"message":              "Article for this place already exists",
		}, nil
	}

	return http.StatusCreated, gin.H{
		"article_id": result.ArticleID,
		"slug":       result.Slug,
		"canonical":  result.Canonical,
		"message":    "Article created successfully",
	}, nil
}

func (h *Handler) mergeArticle(ctx context.Context, call *webhookCall) (int, gin.H, error) {
	var input model.MergeArticleInput
	if err := call.decode(&input); err != nil {
		return 0, nil, err
	}

	result, err := h.pipeline.MergeArticle(ctx, input)
	if err != nil {
		message := "Failed to merge article"
		if errors.Is(err, ingestion.ErrCanonicalNotFound) {
			message = "Canonical article not found"
		}
		return 0, nil, &webhookError{
			status:  http.StatusInternalServerError,
			message: message,
			code:    CodeMergeFailed,
			cause:   err,
		}
	}

	return http.StatusOK, gin.H{
		"updated":              result.Updated,
		"canonical_article_id": input.CanonicalArticleID,
		"message":              "Article merged successfully",
	}, nil
}
