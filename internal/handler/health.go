package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	OK      bool      `json:"ok"`
	Env     EnvStatus `json:"env"`
	Message string    `json:"message"`
	Cache   string    `json:"cache"`
}

// Health godoc
// @Summary      Health check
// @Description  Reports which vendor keys are configured and the cache backend state
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /api/health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.health")
	defer span.End()

	ok := h.env.Gemini && h.env.Alpha
	msg := "All required keys are set"
	if !ok {
		msg = "Missing keys - set GEMINI_API_KEY and ALPHAVANTAGE_API_KEY"
	}

	cacheState := "none"
	if h.cache != nil {
		cacheState = h.cache.Status(ctx)
	}

	c.JSON(http.StatusOK, HealthResponse{
		OK:      ok,
		Env:     h.env,
		Message: msg,
		Cache:   cacheState,
	})
}
