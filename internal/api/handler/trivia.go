package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tannerdj/wokelens/internal/api/middleware"
	"github.com/tannerdj/wokelens/internal/service"
)

// TriviaHandler serves the reference-table picks for the reveal narrative.
type TriviaHandler struct {
	madlibs *service.MadLibService
}

// NewTriviaHandler creates a new trivia handler.
func NewTriviaHandler(madlibs *service.MadLibService) *TriviaHandler {
	return &TriviaHandler{madlibs: madlibs}
}

// GetMadLib handles GET /api/v1/trivia/madlib. It returns one random row per
// reference category. When a description query parameter is present the
// response also carries the fully rendered narrative text.
func (h *TriviaHandler) GetMadLib(c *gin.Context) {
	madlib, err := h.madlibs.RandomMadLib(c.Request.Context())
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("madlib_failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to assemble trivia",
		})
		return
	}

	resp := gin.H{"madlib": madlib}
	if description := c.Query("description"); description != "" {
		resp["narrative"] = service.RenderNarrative(description, madlib)
	}

	c.JSON(http.StatusOK, resp)
}
