package server

import (
	"net/http"
	"strconv"

	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/Luismorlan/nashbites/webhook/ledger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// API serves the read-only public endpoints and the admin views. It never
// writes, all writes go through the webhook pipeline.
type API struct {
	DB     *gorm.DB
	Ledger *ledger.Ledger
}

func NewAPI(db *gorm.DB, ledger *ledger.Ledger) *API {
	return &API{DB: db, Ledger: ledger}
}

// RegisterPublic mounts the public endpoints on rg.
func (a *API) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/articles", a.ListArticles)
	rg.GET("/articles/:slug", a.GetArticle)
	rg.GET("/places", a.ListPlaces)
	rg.GET("/places/:placeId", a.GetPlace)
	rg.GET("/creators", a.ListCreators)
	rg.GET("/creators/:handle", a.GetCreator)
}

// RegisterAdmin mounts the admin endpoints on rg, the caller is responsible
// for guarding rg.
func (a *API) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/webhooks", a.ListWebhookLogs)
}

// pageSize reads ?limit, defaulting to 20 and capped to 100.
func pageSize(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func internalError(c *gin.Context, err error) {
	Log.WithField("path", c.FullPath()).Errorln("public api failed: ", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
