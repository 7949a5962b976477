package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minicloud/portal/internal/catalog"
	"github.com/minicloud/portal/internal/stacks"
	"github.com/minicloud/portal/internal/web"
)

// SourceStateHeader reports where the stack list came from: live, mock or degraded.
const SourceStateHeader = "X-Portal-Source"

const pageTitle = "App Portal"

// PortalHandler serves the dashboard page and its JSON mirror
type PortalHandler struct {
	svc      *stacks.Service
	resolver *catalog.Resolver
}

func NewPortalHandler(svc *stacks.Service, resolver *catalog.Resolver) *PortalHandler {
	return &PortalHandler{svc: svc, resolver: resolver}
}

// Index renders the app grid. Upstream failures still render the page.
func (h *PortalHandler) Index(c *gin.Context) {
	res := h.svc.Fetch(c.Request.Context())

	c.Header(SourceStateHeader, string(res.State))
	c.HTML(http.StatusOK, web.IndexTemplate, web.PageData{
		Title:       pageTitle,
		Cards:       h.resolver.Cards(res.Stacks),
		Degraded:    res.Degraded(),
		Source:      res.Source,
		GeneratedAt: time.Now(),
	})
}

// Stacks returns the raw stack records without display metadata
func (h *PortalHandler) Stacks(c *gin.Context) {
	res := h.svc.Fetch(c.Request.Context())

	c.Header(SourceStateHeader, string(res.State))
	c.JSON(http.StatusOK, gin.H{"stacks": res.Stacks})
}

// Health is a liveness probe; it does not call the upstream.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
