package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/canfly/subdomain-router/internal/api/http/dto"
	"github.com/canfly/subdomain-router/internal/api/http/middleware"
	"github.com/canfly/subdomain-router/internal/catalog"
	"github.com/gin-gonic/gin"
)

const (
	SourcePath   = "path"
	SourceHeader = "header"
)

type ServiceHandler struct {
	catalog *catalog.Catalog
	marker  string
}

func NewServiceHandler(cat *catalog.Catalog, marker string) *ServiceHandler {
	return &ServiceHandler{
		catalog: cat,
		marker:  marker,
	}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services := h.catalog.List()
	resp := dto.ServicesResponse{
		Services: make([]dto.ServiceInfo, 0, len(services)),
		Count:    len(services),
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, dto.ServiceInfo{
			Name:        svc.Name,
			Title:       svc.Title,
			Description: svc.Description,
			URL:         "/" + h.marker + "/" + svc.Name + "/",
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Dispatch reports which service the request resolves to. A path-derived
// subdomain takes precedence over one from the forwarding header.
func (h *ServiceHandler) Dispatch(c *gin.Context) {
	if c.GetBool(middleware.ServiceListKey) {
		h.List(c)
		return
	}

	fromPath := c.GetString(middleware.SubdomainKey)
	fromHeader := c.GetString(middleware.SubdomainFromHeaderKey)

	name, source := fromPath, SourcePath
	if name == "" {
		name, source = fromHeader, SourceHeader
	}
	if name == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	svc, err := h.catalog.Lookup(name)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			slog.Debug("Unknown service requested", "service", name, "source", source)
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found", "service": name})
			return
		}
		slog.Error("Service lookup failed", "service", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.DispatchResponse{
		Service:             svc.Name,
		Title:               svc.Title,
		Source:              source,
		Path:                c.Request.URL.Path,
		Query:               c.Request.URL.RawQuery,
		SubdomainFromPath:   fromPath,
		SubdomainFromHeader: fromHeader,
	})
}
