package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListWebhookLogs shows the latest webhook calls, optionally for one
// endpoint, e.g. ?endpoint=/hooks/articles.create.
func (a *API) ListWebhookLogs(c *gin.Context) {
	logs, err := a.Ledger.Recent(c.Request.Context(), c.Query("endpoint"), pageSize(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
