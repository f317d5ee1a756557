package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmgrocery/internal/platform/view"
)

// Home serves the landing page.
func Home(c *gin.Context) {
	view.HTML(c, http.StatusOK, "home", nil)
}
