package handler

import (
	"net/http"

	"github.com/canfly/subdomain-router/internal/api/http/dto"
	"github.com/canfly/subdomain-router/internal/catalog"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	catalog *catalog.Catalog
}

func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

func (h *HealthHandler) Check(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok"}
	if h.catalog != nil {
		resp.Services = h.catalog.Len()
	}
	ctx.JSON(http.StatusOK, resp)
}
