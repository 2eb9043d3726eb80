package apihandlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"civiceye/internal/app"
	"civiceye/internal/models"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// RootHandler reports that the service is up.
func (h *APIHandler) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Civic-Eye ML Service is running",
		"version": app.Version,
	})
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.App.Classifier != nil,
	})
}

// CategoriesHandler lists the category set and the department owning each.
func (h *APIHandler) CategoriesHandler(c *gin.Context) {
	cats := h.App.Catalog.Categories()
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = string(cat)
	}
	departments := make(map[string]string, len(cats))
	for cat, dept := range h.App.Catalog.Departments() {
		departments[string(cat)] = dept
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  names,
		"departments": departments,
	})
}

func (h *APIHandler) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.StatsService.Snapshot())
}

// CategorizeHandler classifies a report. Validation failures map to 400 with
// the violated constraint; anything else is a generic 500.
func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	req, err := h.parseReportRequest(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			PayloadTooLarge(c, "Request body too large")
			return
		}
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.App.CategorizationService.Categorize(c.Request.Context(), req)
	if err != nil {
		entry := log.WithField("request_id", RequestIDFrom(c))
		if errors.Is(err, models.ErrValidation) {
			entry.Infof("Validation error: %v", err)
			BadRequest(c, err.Error())
			return
		}
		entry.WithError(err).Error("Unexpected error during categorization")
		Internal(c, "Internal server error")
		return
	}

	resp.RequestID = RequestIDFrom(c)
	c.JSON(http.StatusOK, resp)
}

// parseReportRequest decodes the JSON body, bounded by limits.max_body_bytes.
func (h *APIHandler) parseReportRequest(c *gin.Context) (models.ReportRequest, error) {
	var req models.ReportRequest
	if limit := h.App.Config.Limits.MaxBodyBytes; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// NoRouteHandler answers unknown paths with the JSON error envelope.
func NoRouteHandler(c *gin.Context) {
	NotFound(c, "No route for "+strings.ToUpper(c.Request.Method)+" "+c.Request.URL.Path)
}

func NoMethodHandler(c *gin.Context) {
	MethodNotAllowed(c, "Method "+c.Request.Method+" not allowed on "+c.Request.URL.Path)
}
