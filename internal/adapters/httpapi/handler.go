package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_verse_similarity/internal/config"
	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
	"github.com/baditaflorin/go_verse_similarity/internal/ports"
	"github.com/baditaflorin/go_verse_similarity/pkg/verse"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

const (
	compareTimeout = 30 * time.Second
	batchTimeout   = 60 * time.Second
	maxBatchItems  = 256
)

// Comparer is the comparison engine as seen by the HTTP layer.
type Comparer interface {
	Compare(ctx context.Context, recognized, verse string) (domain.Result, error)
	CompareAll(ctx context.Context, pairs []verse.Pair, limit int) ([]domain.Result, error)
}

// ComparisonRequest is the body of POST /compare_verse.
type ComparisonRequest struct {
	RecognizedText string `json:"recognized_text"`
	VerseText      string `json:"verse_text"`
	VerseReference string `json:"verse_reference,omitempty"`
}

// BatchRequest is the body of POST /compare_verse/batch.
type BatchRequest struct {
	Items []ComparisonRequest `json:"items"`
}

// WordComparison is one entry of word_comparisons.
type WordComparison struct {
	Position   int     `json:"position"`
	Recognized string  `json:"recognized"`
	Verse      string  `json:"verse"`
	Match      bool    `json:"match"`
	Similarity float64 `json:"similarity"`
}

// ComparisonResponse is the serialized comparison result.
type ComparisonResponse struct {
	Success         bool             `json:"success"`
	MatchPercentage float64          `json:"match_percentage"`
	WordComparisons []WordComparison `json:"word_comparisons"`
	TotalWords      int              `json:"total_words"`
	MatchedWords    int              `json:"matched_words"`
	MismatchedWords int              `json:"mismatched_words"`
	VerseReference  string           `json:"verse_reference,omitempty"`
}

// BatchResponse is the body returned by POST /compare_verse/batch.
type BatchResponse struct {
	Success bool                 `json:"success"`
	Results []ComparisonResponse `json:"results"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the comparison API.
type Handler struct {
	comparer     Comparer
	logger       ports.Logger
	features     config.FeatureFlags
	batchWorkers int
}

// NewHandler creates the HTTP handler. batchWorkers bounds concurrent
// comparisons inside one batch request (0 = unbounded).
func NewHandler(comparer Comparer, logger ports.Logger, features config.FeatureFlags, batchWorkers int) *Handler {
	return &Handler{
		comparer:     comparer,
		logger:       logger,
		features:     features,
		batchWorkers: batchWorkers,
	}
}

// HandleRequest is the fasthttp request handler.
func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "VerseSimilarityServer")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("Panic while handling request", "panic", rec, "path", string(ctx.Path()))
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			h.writeJSONError(ctx, fmt.Sprintf("Error comparing texts: %v", rec))
		}

		h.logger.Info("Request processed",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"ip", ctx.RemoteIP().String(),
			"duration", time.Since(startTime),
		)
	}()

	if ctx.IsOptions() {
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Response.Header.Set("Access-Control-Allow-Headers", "*")
		ctx.SetStatusCode(fasthttp.StatusNoContent)
		return
	}

	switch string(ctx.Path()) {
	case "/":
		h.handleRoot(ctx)
	case "/health":
		h.handleHealthCheck(ctx)
	case "/compare_verse", "/compare_verse/":
		h.handleCompare(ctx)
	case "/compare_verse/batch":
		h.handleBatch(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}
}

func (h *Handler) handleRoot(ctx *fasthttp.RequestCtx) {
	if !h.requireMethod(ctx, fasthttp.MethodGet) {
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"message":  "Iqra API is running",
		"version":  Version,
		"features": h.features,
	})
}

func (h *Handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	if !h.requireMethod(ctx, fasthttp.MethodGet) {
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	if !h.requireMethod(ctx, fasthttp.MethodPost) {
		return
	}

	var req ComparisonRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if err := verse.ValidateInput(req.RecognizedText, req.VerseText); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Both recognized_text and verse_text are required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()

	result, err := h.comparer.Compare(c, req.RecognizedText, req.VerseText)
	if err != nil {
		h.logger.Error("Comparison failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.writeJSONError(ctx, "Error comparing texts: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, toResponse(result, req.VerseReference))
}

func (h *Handler) handleBatch(ctx *fasthttp.RequestCtx) {
	if !h.requireMethod(ctx, fasthttp.MethodPost) {
		return
	}

	var req BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "At least one item is required")
		return
	}
	if len(req.Items) > maxBatchItems {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, fmt.Sprintf("At most %d items are allowed", maxBatchItems))
		return
	}

	pairs := make([]verse.Pair, len(req.Items))
	for i, item := range req.Items {
		if err := verse.ValidateInput(item.RecognizedText, item.VerseText); err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			h.writeJSONError(ctx, fmt.Sprintf("items[%d]: Both recognized_text and verse_text are required", i))
			return
		}
		pairs[i] = verse.Pair{Recognized: item.RecognizedText, Verse: item.VerseText}
	}

	c, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	results, err := h.comparer.CompareAll(c, pairs, h.batchWorkers)
	if err != nil {
		h.logger.Error("Batch comparison failed", "error", err, "items", len(pairs))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.writeJSONError(ctx, "Error comparing texts: "+err.Error())
		return
	}

	resp := BatchResponse{Success: true, Results: make([]ComparisonResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = toResponse(res, req.Items[i].VerseReference)
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, resp)
}

func (h *Handler) requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	h.writeJSONError(ctx, "Method not allowed")
	return false
}

func toResponse(res domain.Result, reference string) ComparisonResponse {
	words := make([]WordComparison, len(res.WordComparisons))
	for i, wc := range res.WordComparisons {
		words[i] = WordComparison{
			Position:   wc.Position,
			Recognized: wc.Recognized,
			Verse:      wc.Verse,
			Match:      wc.Match,
			Similarity: wc.Similarity,
		}
	}
	return ComparisonResponse{
		Success:         true,
		MatchPercentage: res.MatchPercentage,
		WordComparisons: words,
		TotalWords:      res.TotalWords,
		MatchedWords:    res.MatchedWords,
		MismatchedWords: res.MismatchedWords,
		VerseReference:  reference,
	}
}

// writeJSONResponse writes a JSON response to the context
func (h *Handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *Handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		h.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
