package profiles

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/lumen-studio/lumen-backend/internal/api/http"
	"github.com/lumen-studio/lumen-backend/internal/auth"
)

// maxImageBytes caps profile image uploads.
const maxImageBytes = 5 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches profile routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.ensure)
	rg.GET("", h.get)
	rg.POST("/photo", h.uploadPhoto)
}

// ensure is called by the frontend right after sign-in.
func (h *Handler) ensure(c *gin.Context) {
	id := auth.CurrentIdentity(c)
	if err := h.svc.EnsureProfile(c.Request.Context(), id); err != nil {
		log.Printf("[error] operation=ensure_profile uid=%s error=%v", id.UID, err)
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) get(c *gin.Context) {
	uid := auth.UserUID(c)
	p, err := h.svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) uploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "could not read file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "could not read file"})
		return
	}

	uid := auth.UserUID(c)
	photoURL, err := h.svc.UploadProfileImage(c.Request.Context(), uid, file.Filename, data)
	if err != nil {
		log.Printf("[error] operation=upload_profile_image uid=%s error=%v", uid, err)
		status, msg := httpapi.StoreErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "photo_url": photoURL})
}
