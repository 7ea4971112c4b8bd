package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/infra/logger"
	"github.com/hridaya423/newster/internal/usecase"
)

// AnalyzeArticle returns a sentiment, credibility and bias analysis.
// (POST /analyze)
func (h *Handler) AnalyzeArticle(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "analyze_article")

	var req analyzeRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "invalid analyze body", "error", err)
		return c.JSON(http.StatusBadRequest, apperrors.HTTPErrorResponse{Error: msgInvalidBody})
	}

	analysis, err := h.analyze.Execute(ctx, usecase.AnalyzeInput{
		Title:   req.Title,
		Content: req.Content,
		Source:  string(req.Source),
	})
	if err != nil {
		return handleError(c, err, "analyze_article", analyzeMessages)
	}
	return c.JSON(http.StatusOK, analyzeResponse{Analysis: *analysis})
}

// SummarizeArticle returns a short model-written summary.
// (POST /summarize)
func (h *Handler) SummarizeArticle(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "summarize_article")

	var req summarizeRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "invalid summarize body", "error", err)
		return c.JSON(http.StatusBadRequest, apperrors.HTTPErrorResponse{Error: msgInvalidBody})
	}

	summary, err := h.summarize.Execute(ctx, req.Text)
	if err != nil {
		return handleError(c, err, "summarize_article", summarizeMessages)
	}
	return c.JSON(http.StatusOK, summarizeResponse{Summary: summary})
}
