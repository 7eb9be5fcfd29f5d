package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCatalog searches the standard risk library.
func (h *Handler) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.Catalog.Categories(),
		"risks":      h.Catalog.Search(c.Query("category"), c.Query("q")),
	})
}
