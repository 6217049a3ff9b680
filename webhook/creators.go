package webhook

import (
	"context"
	"net/http"

	"github.com/Luismorlan/nashbites/model"
	"github.com/Luismorlan/nashbites/webhook/validation"
	"github.com/gin-gonic/gin"
)

var upsertCreatorRequiredFields = []string{
	"instagram_handle",
	"display_name",
	"instagram_url",
}

func (h *Handler) upsertCreator(ctx context.Context, call *webhookCall) (int, gin.H, error) {
	var input model.UpsertCreatorInput
	if err := call.decode(&input); err != nil {
		return 0, nil, err
	}
	handle, ok := validation.NormalizeInstagramHandle(input.InstagramHandle)
	if !ok {
		return 0, nil, errInvalidHandle()
	}
	input.InstagramHandle = handle

	creator, err := h.pipeline.UpsertCreator(ctx, input)
	if err != nil {
		return 0, nil, errInternal(err)
	}

	return http.StatusOK, gin.H{
		"creator_id":       creator.Id,
		"instagram_handle": creator.InstagramHandle,
		"display_name":     creator.DisplayName,
		"created_at":       creator.CreatedAt,
		"message":          "Creator upserted successfully",
	}, nil
}
