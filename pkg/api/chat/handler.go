package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"legacy_m/pkg/core/agent"
	"legacy_m/pkg/core/llm"
	"legacy_m/pkg/core/store"
	"legacy_m/pkg/core/utils"
	"legacy_m/pkg/logger"
)

// Completer abstracts the provider fallback dispatcher.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (text string, provider string, err error)
}

// HistoryStore abstracts chat persistence.
type HistoryStore interface {
	Append(ctx context.Context, msg store.ChatMessage) error
	RecentHistory(ctx context.Context, userID, confession string, n int) ([]store.ChatMessage, error)
}

// Handler serves the confession chat endpoint. Request-scoped loggers come
// from the request context (see logger.FromContext).
type Handler struct {
	factory      *agent.Factory
	dispatcher   Completer
	history      HistoryStore
	topK         int
	historyTurns int
}

func NewHandler(factory *agent.Factory, dispatcher Completer, history HistoryStore, topK, historyTurns int) *Handler {
	return &Handler{
		factory:      factory,
		dispatcher:   dispatcher,
		history:      history,
		topK:         topK,
		historyTurns: historyTurns,
	}
}

// ChatRequest is the user's question within one confession context.
type ChatRequest struct {
	Message    string `json:"message"`
	UserID     string `json:"user_id"`
	Confession string `json:"confession"`
}

// ChatResponse carries the final answer. Sources list the passages the
// answer was grounded on.
type ChatResponse struct {
	Answer     string   `json:"answer"`
	Confession string   `json:"confession"`
	Sources    []string `json:"sources,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleChat runs one chat turn: agent selection, passage retrieval, prompt
// composition, provider fallback, history append.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := logger.FromContext(r.Context())

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	// Agent selection fails fast on unknown confessions: no provider call.
	a, err := h.factory.New(req.Confession)
	if err != nil {
		if errors.Is(err, agent.ErrUnsupportedConfession) {
			writeError(w, http.StatusBadRequest, "unsupported confession: "+req.Confession)
			return
		}
		log.Error().Err(err).Msg("agent factory failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	results := a.SearchRelevantTexts(req.Message, h.topK)

	// History is keyed by the normalized confession id so that mixed-case
	// request ids read and write the same rows.
	history := h.loadHistory(r.Context(), req.UserID, a.Confession())

	llmReq := agent.ComposeRequest(a, req.Message, history, results)
	text, provider, err := h.dispatcher.Complete(r.Context(), llmReq)
	if err != nil {
		if errors.Is(err, llm.ErrAllProvidersFailed) {
			// Generic message only: no provider detail reaches the user.
			writeError(w, http.StatusServiceUnavailable, "Сервис временно недоступен. Попробуйте позже.")
			return
		}
		log.Error().Err(err).Msg("completion failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	answer := utils.CleanAnswer(text)
	if !utils.ValidateMarkdown(answer) {
		log.Warn().Str("provider", provider).Msg("answer is not valid markdown")
	}
	log.Info().
		Str("confession", req.Confession).
		Str("provider", provider).
		Int("sources", len(results)).
		Msg("chat turn completed")

	if h.history != nil {
		if err := h.history.Append(r.Context(), store.ChatMessage{
			UserID:     req.UserID,
			Confession: a.Confession(),
			Question:   req.Message,
			Answer:     answer,
		}); err != nil {
			// History is best effort; the user still gets the answer.
			log.Warn().Err(err).Msg("failed to append chat history")
		}
	}

	sources := make([]string, 0, len(results))
	for _, res := range results {
		sources = append(sources, res.Passage.Reference)
	}

	json.NewEncoder(w).Encode(ChatResponse{
		Answer:     answer,
		Confession: a.Confession(),
		Sources:    sources,
	})
}

// loadHistory converts stored turns into provider messages, oldest first.
// confession must be the agent's normalized id, the same key Append uses.
func (h *Handler) loadHistory(ctx context.Context, userID, confession string) []llm.Message {
	if h.history == nil || userID == "" {
		return nil
	}
	turns, err := h.history.RecentHistory(ctx, userID, confession, h.historyTurns)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("failed to load chat history")
		return nil
	}
	out := make([]llm.Message, 0, len(turns)*2)
	for _, t := range turns {
		out = append(out,
			llm.Message{Role: "user", Content: t.Question},
			llm.Message{Role: "assistant", Content: t.Answer},
		)
	}
	return out
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
