package main

import (
	"context"
	"net/http"
	"os"

	analyticsapi "legacy_m/pkg/api/analytics"
	chatapi "legacy_m/pkg/api/chat"
	configapi "legacy_m/pkg/api/config"
	"legacy_m/pkg/core/agent"
	"legacy_m/pkg/core/category"
	"legacy_m/pkg/core/config"
	"legacy_m/pkg/core/corpus"
	"legacy_m/pkg/core/llm"
	"legacy_m/pkg/core/statement"
	"legacy_m/pkg/core/store"
	"legacy_m/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// withRequestLog tags every request with an id and stores the scoped logger
// in the request context for the handlers to pick up.
func withRequestLog(log zerolog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.With().
			Str("request_id", uuid.NewString()).
			Str("path", r.URL.Path).
			Logger()
		next(w, r.WithContext(logger.WithContext(r.Context(), reqLog)))
	}
}

func main() {
	// Load environment variables
	godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	cfg, err := config.Load("config/models.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := store.InitDB(ctx); err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}
	pool := store.GetPool()

	// Corpus is loaded whole at startup; see cmd/loadcorpus for ingestion.
	passages, err := store.NewPassagesRepo(pool).GetAllPassages(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load passages")
	}
	texts := corpus.New(passages)
	log.Info().Int("passages", texts.Size()).Strs("confessions", texts.Confessions()).Msg("corpus loaded")

	factory := agent.NewFactory(texts)

	// Provider fallback chain, in config order. A provider that fails to
	// construct is skipped with a warning rather than aborting startup.
	var providers []llm.Provider
	for _, pc := range cfg.Providers {
		p, err := llm.NewProvider(pc.Name, pc.Model)
		if err != nil {
			log.Warn().Err(err).Str("provider", pc.Name).Msg("provider unavailable")
			continue
		}
		providers = append(providers, p)
	}
	if len(providers) == 0 {
		log.Fatal().Msg("no usable providers configured")
	}
	dispatcher := llm.NewDispatcher(providers, log)

	rules := category.DefaultRules()
	if cfg.Analytics.RulesFile != "" {
		rules, err = category.LoadTable(cfg.Analytics.RulesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Analytics.RulesFile).Msg("load category rules")
		}
	}

	var assist analyticsapi.Assister
	if cfg.Analytics.AssistProvider != "" {
		p, err := llm.NewProvider(cfg.Analytics.AssistProvider, "")
		if err != nil {
			log.Warn().Err(err).Msg("assist provider unavailable, rules only")
		} else {
			assist = category.NewAssist(rules, p)
		}
	}

	// Chat endpoints
	chatHandler := chatapi.NewHandler(factory, dispatcher, store.NewChatRepo(pool),
		cfg.Retrieval.TopK, cfg.Chat.HistoryTurns)
	http.HandleFunc("/api/chat", withRequestLog(log, chatHandler.HandleChat))

	// Config endpoints
	configHandler := configapi.NewHandler(dispatcher, factory)
	http.HandleFunc("/api/config", withRequestLog(log, configHandler.HandleConfig))

	// Bank statement analytics endpoints
	analyticsHandler := analyticsapi.NewHandler(statement.NewParser(), rules,
		store.NewTransactionsRepo(pool), assist, cfg.Analytics.DefaultPerPage)
	http.HandleFunc("/api/upload", withRequestLog(log, analyticsHandler.HandleUpload))
	http.HandleFunc("/api/summary", withRequestLog(log, analyticsHandler.HandleSummary))
	http.HandleFunc("/api/categories", withRequestLog(log, analyticsHandler.HandleCategories))
	http.HandleFunc("/api/monthly", withRequestLog(log, analyticsHandler.HandleMonthly))
	http.HandleFunc("/api/trends", withRequestLog(log, analyticsHandler.HandleTrends))
	http.HandleFunc("/api/transactions", withRequestLog(log, analyticsHandler.HandleTransactions))
	http.HandleFunc("/api/export/csv", withRequestLog(log, analyticsHandler.HandleExportCSV))
	http.HandleFunc("/api/update_category", withRequestLog(log, analyticsHandler.HandleUpdateCategory))
	http.HandleFunc("/api/reset", withRequestLog(log, analyticsHandler.HandleReset))

	log.Info().Str("listen", cfg.Listen).Strs("providers", dispatcher.Providers()).Msg("API server starting")
	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		log.Error().Err(err).Msg("server failed to start")
		os.Exit(1)
	}
}
