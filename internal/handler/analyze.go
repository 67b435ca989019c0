package handler

import (
	"context"
	"net/http"
	"strings"

	"vibe-ticker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"go.opentelemetry.io/otel/attribute"
)

// Analyze godoc
// @Summary      Analyze a ticker
// @Description  Fetches price history and news for a symbol, scores headline sentiment and returns the combined vibe
// @Tags         analyze
// @Produce      json
// @Param        symbol  query  string  true  "Ticker symbol (e.g., AAPL, BTC)"
// @Success      200  {object}  domain.TickerData
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/analyze [get]
func (h *Handler) Analyze(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	if h.analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.analyzeTimeout)
		defer cancel()
	}

	data, err := h.analyzer.AnalyzeTicker(ctx, symbol)
	if err != nil {
		span.RecordError(err)
		log.Error().Err(err).Str("symbol", symbol).Msg("analyze failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.UserMessage(err)})
		return
	}

	c.Header("Cache-Control", "s-maxage=300, stale-while-revalidate")
	c.JSON(http.StatusOK, data)
}
