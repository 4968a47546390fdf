package notes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "github.com/lumen-studio/lumen-backend/internal/api/http"
	"github.com/lumen-studio/lumen-backend/internal/auth"
)

// initialSnapshotTimeout bounds the one-shot list read; the watch
// itself has no deadline.
const initialSnapshotTimeout = 10 * time.Second

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches note routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/stream", h.stream)
	rg.POST("", h.create)
	rg.DELETE("/:id", h.delete)
}

type createReq struct {
	Content string `json:"content"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.Add(c.Request.Context(), auth.UserUID(c), req.Content)
	if err == ErrEmptyContent {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error(), "field": "content"})
		return
	}
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
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
		c.JSON(http.StatusOK, gin.H{"ok": true, "notes": FromDocs(docs)})
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
			// Client disconnected
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
			data, _ := json.Marshal(gin.H{"notes": FromDocs(docs)})
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
