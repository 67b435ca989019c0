package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// SymbolSearch godoc
// @Summary      Search ticker symbols
// @Description  Returns up to six autocomplete matches. Short queries and upstream failures return an empty list.
// @Tags         search
// @Produce      json
// @Param        q  query  string  false  "Search text (at least 2 characters)"
// @Success      200  {array}  domain.TickerSuggestion
// @Router       /api/symbol-search [get]
func (h *Handler) SymbolSearch(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.symbol-search")
	defer span.End()

	q := c.Query("q")
	span.SetAttributes(attribute.String("query", q))

	results := h.searcher.SearchTickers(ctx, q)
	c.Header("Cache-Control", "s-maxage=120, stale-while-revalidate")
	c.JSON(http.StatusOK, results)
}
