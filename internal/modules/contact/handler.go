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

// RegisterRoutes mounts POST /contact/. mws run before the handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mws ...gin.HandlerFunc) {
	rg.POST("/contact/", append(mws, h.submit)...)
}

// submit always answers 200 with {success, message|error}.
func (h *Handler) submit(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": MsgGenericError})
		return
	}
	if _, err := h.svc.Submit(c.Request.Context(), in); err != nil {
		if errors.Is(err, ErrMissingFields) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": MsgFieldsMissing})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusOK, gin.H{"success": false, "error": MsgGenericError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": MsgSent})
}

// JSONLimited is the rate-limit response of the JSON endpoint.
func JSONLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": MsgGenericError})
}
