package main

import (
	"github.com/Luismorlan/nashbites/webhook"
	"github.com/gin-gonic/gin"
)

// AddIngestionWebhooks mounts the ingestion endpoints under both the short
// and the legacy gumloop prefix.
func AddIngestionWebhooks(router *gin.Engine, handler *webhook.Handler) {
	handler.Register(router.Group("/hooks"))
	handler.Register(router.Group("/api/hooks/gumloop"))
	// Additional webhooks should be added below this line
}
