package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the public contact route.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.submit)
}

type submitReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), Message{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		field := "message"
		switch {
		case errors.Is(err, ErrNameTooShort):
			field = "name"
		case errors.Is(err, ErrInvalidEmail):
			field = "email"
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error(), "field": field})
		return
	}

	if !res.Success {
		c.JSON(http.StatusBadGateway, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
