package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	httpapi "github.com/lumen-studio/lumen-backend/internal/api/http"
	"github.com/lumen-studio/lumen-backend/internal/ai"
	"github.com/lumen-studio/lumen-backend/internal/auth"
)

const initialSnapshotTimeout = 10 * time.Second

// DetailGenerator is what the AI-assisted create needs from the model
// client.
type DetailGenerator interface {
	GenerateProjectDetails(ctx context.Context, prompt string) (*ai.ProjectDetails, error)
}

// Handler serves the project routes. gen is nil when no model API key
// is configured; the generate route then fails explicitly.
type Handler struct {
	svc *Service
	gen DetailGenerator
}

func NewHandler(svc *Service, gen DetailGenerator) *Handler {
	return &Handler{svc: svc, gen: gen}
}

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/stream", h.stream)
	rg.POST("", h.create)
	rg.POST("/generate", h.generate)
	rg.DELETE("/:id", h.delete)
}

type createReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.Add(c.Request.Context(), auth.UserUID(c), req.Name, req.Description, ParseStatus(req.Status))
	if errors.Is(err, ErrNameTooShort) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error(), "field": "name"})
		return
	}
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

// generate derives name/description/status from a free-text prompt
// via the hosted model, then creates the project.
func (h *Handler) generate(c *gin.Context) {
	if h.gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "AI generation is not configured"})
		return
	}

	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	details, err := h.gen.GenerateProjectDetails(c.Request.Context(), req.Prompt)
	if err != nil {
		log.Printf("[error] operation=generate_project error=%v", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "the AI could not generate project details"})
		return
	}

	name := details.Name
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLen {
		// Pad rather than reject: the model occasionally answers with
		// a too-short name for a valid prompt.
		name = fmt.Sprintf("Project %s", name)
	}

	err = h.svc.Add(c.Request.Context(), auth.UserUID(c), name, details.Description, ParseStatus(details.Status))
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": gin.H{
		"name":        name,
		"description": details.Description,
		"status":      ParseStatus(details.Status),
	}})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), auth.UserUID(c), c.Param("id"))
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// list answers with the first snapshot of the watch and releases it.
func (h *Handler) list(c *gin.Context) {
	sub, err := h.svc.Subscribe(c.Request.Context(), auth.UserUID(c))
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	defer sub.Stop()

	select {
	case docs, ok := <-sub.Updates():
		if !ok {
			// A terminal error can race the channel close; prefer it
			// over answering 200 with an empty list.
			select {
			case err := <-sub.Err():
				status, msg := httpapi.StoreErrorStatus(err)
				c.JSON(status, gin.H{"ok": false, "error": msg})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "projects": FromDocs(docs)})
	case err := <-sub.Err():
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
	case <-time.After(initialSnapshotTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "error": "timed out waiting for snapshot"})
	}
}

// stream pushes every snapshot to the client over Server-Sent Events
// until the client disconnects.
func (h *Handler) stream(c *gin.Context) {
	sub, err := h.svc.Subscribe(c.Request.Context(), auth.UserUID(c))
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	defer sub.Stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case docs, open := <-sub.Updates():
			if !open {
				// The terminal error may have raced the close; still
				// tell the client why the stream ended.
				select {
				case err := <-sub.Err():
					_, msg := httpapi.StoreErrorStatus(err)
					data, _ := json.Marshal(gin.H{"error": msg})
					fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", data)
					flusher.Flush()
				default:
				}
				return
			}
			data, _ := json.Marshal(gin.H{"projects": FromDocs(docs)})
			fmt.Fprintf(c.Writer, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()

		case err := <-sub.Err():
			_, msg := httpapi.StoreErrorStatus(err)
			data, _ := json.Marshal(gin.H{"error": msg})
			fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", data)
			flusher.Flush()
			return
		}
	}
}
