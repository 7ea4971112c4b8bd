package rest

import (
	"github.com/hridaya423/newster/internal/infra/resilience"
	"github.com/hridaya423/newster/internal/usecase"
)

// Handler serves the proxy endpoints.
type Handler struct {
	headlines   usecase.HeadlinesUsecase
	search      usecase.SearchUsecase
	analyze     usecase.AnalyzeUsecase
	summarize   usecase.SummarizeUsecase
	serviceName string
	breakers    []*resilience.CircuitBreaker
}

// NewHandler builds the handler. Breakers are reported by the health endpoint.
func NewHandler(
	headlines usecase.HeadlinesUsecase,
	search usecase.SearchUsecase,
	analyze usecase.AnalyzeUsecase,
	summarize usecase.SummarizeUsecase,
	serviceName string,
	breakers ...*resilience.CircuitBreaker,
) *Handler {
	return &Handler{
		headlines:   headlines,
		search:      search,
		analyze:     analyze,
		summarize:   summarize,
		serviceName: serviceName,
		breakers:    breakers,
	}
}
