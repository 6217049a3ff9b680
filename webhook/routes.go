package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ArticlesCreate = "articles.create"
	ArticlesMerge  = "articles.merge"
	CreatorsUpsert = "creators.upsert"
)

// Register mounts the webhook endpoints on rg. The same handler can be
// mounted under several prefixes, idempotency keys are scoped by endpoint
// name and not by mount point.
func (h *Handler) Register(rg *gin.RouterGroup) {
	h.register(rg, ArticlesCreate, createArticleRequiredFields, h.createArticle)
	h.register(rg, ArticlesMerge, mergeArticleRequiredFields, h.mergeArticle)
	h.register(rg, CreatorsUpsert, upsertCreatorRequiredFields, h.upsertCreator)
}

func (h *Handler) register(rg *gin.RouterGroup, name string, required []string, fn endpointFunc) {
	path := "/" + name
	rg.POST(path, h.serve(EndpointPrefix+name, required, fn))
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rg.Handle(method, path, methodNotAllowed)
	}
}
