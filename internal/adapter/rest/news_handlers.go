package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hridaya423/newster/internal/infra/logger"
)

// GetNews returns filtered top headlines.
// (GET /news?category=&page=)
func (h *Handler) GetNews(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "get_news")

	envelope, err := h.headlines.Execute(ctx, c.QueryParam("category"), c.QueryParam("page"))
	if err != nil {
		return handleError(c, err, "get_news", headlinesMessages)
	}
	return c.JSON(http.StatusOK, envelope)
}

// SearchNews returns filtered search results.
// (GET /search?q=&page=)
func (h *Handler) SearchNews(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "search_news")

	envelope, err := h.search.Execute(ctx, c.QueryParam("q"), c.QueryParam("page"))
	if err != nil {
		return handleError(c, err, "search_news", searchMessages)
	}
	return c.JSON(http.StatusOK, envelope)
}
