package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rajlabs/route-sitemap/internal/generator"
	"github.com/rajlabs/route-sitemap/internal/models"
	"github.com/rajlabs/route-sitemap/internal/sitemap"
	"github.com/rajlabs/route-sitemap/internal/storage"
)

type Handler struct {
	routes    []string
	documents []generator.Document
	store     storage.Store
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count,omitempty"`
}

type RouteResponse struct {
	Token string `json:"token"`
	Path  string `json:"path"`
}

func NewHandler(result *generator.Result, store storage.Store) *Handler {
	h := &Handler{store: store}
	if result != nil {
		h.routes = result.Routes
		h.documents = result.Documents
	}
	return h
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"RouteCount": len(h.routes),
		"Documents":  h.documents,
	})
}

func (h *Handler) ServeDocument(doc generator.Document) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/xml; charset=utf-8", doc.Content)
	}
}

func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

func (h *Handler) ListRoutes(c *gin.Context) {
	routes := make([]RouteResponse, 0, len(h.routes))
	for _, token := range h.routes {
		routes = append(routes, RouteResponse{Token: token, Path: sitemap.CleanRoute(token)})
	}

	c.JSON(http.StatusOK, routes)
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Run history is not configured"})
		return
	}

	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	runs, err := h.store.ListRuns(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch runs"})
		return
	}

	if runs == nil {
		runs = []*models.Run{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  runs,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetRun(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Run history is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid run ID"})
		return
	}

	run, err := h.store.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch run"})
		return
	}

	if run == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
