package di

import (
	"log/slog"
	"net/http"

	"github.com/hridaya423/newster/internal/adapter/groq"
	"github.com/hridaya423/newster/internal/adapter/newsapi"
	"github.com/hridaya423/newster/internal/adapter/rest"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/config"
	"github.com/hridaya423/newster/internal/infra/httpclient"
	"github.com/hridaya423/newster/internal/infra/metrics"
	"github.com/hridaya423/newster/internal/infra/resilience"
	"github.com/hridaya423/newster/internal/usecase"
)

// ApplicationComponents holds all wired dependencies of the server.
type ApplicationComponents struct {
	// Upstream clients
	NewsClient domain.NewsClient
	LLMClient  domain.LLMClient

	// Breakers
	NewsBreaker *resilience.CircuitBreaker
	LLMBreaker  *resilience.CircuitBreaker

	// Usecases
	HeadlinesUsecase usecase.HeadlinesUsecase
	SearchUsecase    usecase.SearchUsecase
	AnalyzeUsecase   usecase.AnalyzeUsecase
	SummarizeUsecase usecase.SummarizeUsecase

	// REST
	Handler        *rest.Handler
	MetricsHandler http.Handler
}

// NewApplicationComponents wires every dependency from cfg.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger) *ApplicationComponents {
	// Breakers
	newsBreaker := newBreaker(cfg.Breaker, "newsapi", log)
	llmBreaker := newBreaker(cfg.Breaker, "groq", log)

	// Shared HTTP clients with connection pooling
	newsHTTP := httpclient.NewPooledClient(cfg.NewsAPI.Timeout)
	llmHTTP := httpclient.NewPooledClient(cfg.LLM.Timeout)

	// External clients
	newsClient := newsapi.NewClient(cfg.NewsAPI, newsHTTP, newsBreaker)
	llmClient := groq.NewClient(cfg.LLM, llmHTTP, llmBreaker)

	// Usecases
	headlinesUsecase := usecase.NewHeadlinesUsecase(newsClient)
	searchUsecase := usecase.NewSearchUsecase(newsClient)
	analyzeUsecase := usecase.NewAnalyzeUsecase(llmClient)
	summarizeUsecase := usecase.NewSummarizeUsecase(llmClient)

	if cfg.NewsAPI.APIKey == "" {
		log.Warn("NEWS_API_KEY is not set; /news and /search will report a configuration error")
	}
	if cfg.LLM.APIKey == "" {
		log.Warn("GROQ_API_KEY is not set; /summarize will fail and /analyze will return the fallback analysis")
	}

	return &ApplicationComponents{
		NewsClient:       newsClient,
		LLMClient:        llmClient,
		NewsBreaker:      newsBreaker,
		LLMBreaker:       llmBreaker,
		HeadlinesUsecase: headlinesUsecase,
		SearchUsecase:    searchUsecase,
		AnalyzeUsecase:   analyzeUsecase,
		SummarizeUsecase: summarizeUsecase,
		Handler: rest.NewHandler(
			headlinesUsecase,
			searchUsecase,
			analyzeUsecase,
			summarizeUsecase,
			cfg.OTel.ServiceName,
			newsBreaker,
			llmBreaker,
		),
		MetricsHandler: metrics.Handler(),
	}
}

func newBreaker(cfg config.BreakerConfig, name string, log *slog.Logger) *resilience.CircuitBreaker {
	metrics.SetBreakerState(name, int(resilience.StateClosed))

	breakerCfg := resilience.DefaultCircuitBreakerConfig(name)
	if cfg.FailureThreshold > 0 {
		breakerCfg.FailureThreshold = cfg.FailureThreshold
	}
	if cfg.SuccessThreshold > 0 {
		breakerCfg.SuccessThreshold = cfg.SuccessThreshold
	}
	if cfg.OpenTimeout > 0 {
		breakerCfg.OpenTimeout = cfg.OpenTimeout
	}
	breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
		metrics.SetBreakerState(name, int(to))
		log.Warn("circuit breaker state changed",
			"upstream", name,
			"from", from.String(),
			"to", to.String(),
		)
	}

	return resilience.NewCircuitBreaker(breakerCfg)
}
