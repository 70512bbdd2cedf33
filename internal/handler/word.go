package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wordstash/api/internal/dictionary"
	"github.com/wordstash/api/internal/model"
)

type WordHandler struct {
	service *dictionary.Service
}

func NewWordHandler(service *dictionary.Service) *WordHandler {
	return &WordHandler{service: service}
}

// Lookup handles GET /api/words/:word
func (h *WordHandler) Lookup(c *gin.Context) {
	word := c.Param("word")

	req := dictionary.LookupRequest{Word: word}

	if provider := c.Query("provider"); provider != "" {
		id := model.ProviderID(provider)
		if !model.KnownProvider(id) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider"})
			return
		}
		req.Provider = id
	}

	if max := c.Query("max"); max != "" {
		n, err := strconv.Atoi(max)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max must be a positive integer"})
			return
		}
		req.MaxResults = n
	}

	result := h.service.FetchResult(c.Request.Context(), req)
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Suggest handles GET /api/suggest
func (h *WordHandler) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	suggestions := h.service.Suggestions(c.Request.Context(), query)

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"suggestions": suggestions,
	})
}
