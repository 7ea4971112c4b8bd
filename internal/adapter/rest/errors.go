package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/logger"
)

const (
	msgNewsKeyMissing      = "News API key is not configured"
	msgInvalidNewsResponse = "Invalid response from News API"
	msgFetchNewsFailed     = "Failed to fetch news"
	msgSearchRequired      = "Search query is required"
	msgSearchFailed        = "Failed to search news"
	msgAnalyzeRequired     = "Title and content are required"
	msgAnalyzeFailed       = "Failed to analyze article"
	msgTextRequired        = "Text is required"
	msgSummarizeFailed     = "Failed to generate summary"
	msgInvalidBody         = "Invalid request body"
)

// errorMessages are the fixed client-facing messages of one endpoint.
// Empty fields fall back to failure.
type errorMessages struct {
	validation    string
	configuration string
	parse         string
	failure       string
}

var (
	headlinesMessages = errorMessages{
		configuration: msgNewsKeyMissing,
		parse:         msgInvalidNewsResponse,
		failure:       msgFetchNewsFailed,
	}
	searchMessages = errorMessages{
		validation:    msgSearchRequired,
		configuration: msgNewsKeyMissing,
		parse:         msgInvalidNewsResponse,
		failure:       msgSearchFailed,
	}
	analyzeMessages = errorMessages{
		validation: msgAnalyzeRequired,
		failure:    msgAnalyzeFailed,
	}
	summarizeMessages = errorMessages{
		validation: msgTextRequired,
		failure:    msgSummarizeFailed,
	}
)

// handleError logs err with request context and answers with a fixed message.
// No error detail reaches the client.
func handleError(c echo.Context, err error, operation string, msgs errorMessages) error {
	ctx := c.Request().Context()
	apperrors.LogError(logger.FromContext(ctx).With(
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	), err, operation)

	status := apperrors.HTTPStatusCode(err)

	switch {
	case apperrors.IsValidationError(err) && msgs.validation != "":
		return c.JSON(status, apperrors.HTTPErrorResponse{Error: msgs.validation})
	case apperrors.IsConfigurationError(err) && msgs.configuration != "":
		return c.JSON(status, apperrors.HTTPErrorResponse{Error: msgs.configuration})
	case apperrors.IsParseError(err) && msgs.parse != "":
		return c.JSON(status, invalidUpstreamResponse{Error: msgs.parse, Articles: []domain.Article{}})
	}

	return c.JSON(status, apperrors.HTTPErrorResponse{Error: msgs.failure})
}
