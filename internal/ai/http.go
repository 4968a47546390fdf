package ai

import (
	"context"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// minPromptLen matches the playground form's client-side rule.
const minPromptLen = 10

// TextGenerator is what the playground handler needs from the model
// client.
type TextGenerator interface {
	SimpleText(ctx context.Context, prompt string) (string, error)
}

// Handler serves the AI playground. gen is nil when no API key is
// configured; the route then fails explicitly.
type Handler struct {
	gen TextGenerator
}

func NewHandler(gen TextGenerator) *Handler {
	return &Handler{gen: gen}
}

// Register attaches AI routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/playground", h.playground)
}

type promptReq struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) playground(c *gin.Context) {
	if h.gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "AI generation is not configured"})
		return
	}

	var req promptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if utf8.RuneCountInString(req.Prompt) < minPromptLen {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "prompt must be at least 10 characters", "field": "prompt"})
		return
	}

	text, err := h.gen.SimpleText(c.Request.Context(), req.Prompt)
	if err != nil {
		// Provider detail stays in the logs, not in the response.
		log.Printf("[error] operation=playground error=%v", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "could not get a response from the AI"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "response": text})
}
