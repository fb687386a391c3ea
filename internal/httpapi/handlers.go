// internal/httpapi/handlers.go

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"SpudsBot-Go/internal/intake"
	"SpudsBot-Go/internal/logsink"
	"SpudsBot-Go/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	welcomeMessage = "Welcome! I'm Grandpa Spuds Oakley, your friendly AI fishing guide. Please share your first name and where you'd like to go fishing. I'll help you find the best times to catch striped bass based on moon phases and tides!"

	testRouteMessage = "Hello, We are going to tell ya when the best times to fish for striped bass are based on the moon and the tides if that's ok with you"

	// Returned when a note or search answer cannot be produced.
	noteFallback = "couldn't find any relevant note"

	maxBodyBytes = 1 << 20
)

// Persistence is the slice of the store the handlers need.
type Persistence interface {
	Available() bool
	SaveUser(ctx context.Context, firstName, fishingLocation string) bool
	LatestUserByName(ctx context.Context, firstName string) (*store.UserRecord, error)
	SaveNote(ctx context.Context, text string) bool
	LatestNote(ctx context.Context) (string, error)
}

// Searcher answers free-form queries.
type Searcher interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Reporter composes fishing-condition reports.
type Reporter interface {
	Report(ctx context.Context, firstName, fishingLocation string) string
}

// InteractionLogger records intake submissions out of band.
type InteractionLogger interface {
	Append(rec logsink.Record)
}

// Handler carries the handlers' dependencies.
type Handler struct {
	store        Persistence
	search       Searcher
	composer     Reporter
	validate     *validator.Validate
	interactions InteractionLogger
	logger       *zap.Logger
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type resultResponse struct {
	Result string `json:"result"`
}

type noteResponse struct {
	Note string `json:"note"`
}

type noteRequest struct {
	Note string `json:"note" validate:"required"`
}

type searchRequest struct {
	SearchQuery string `json:"search_query" validate:"required"`
}

// Root greets the caller with the Grandpa Spuds introduction.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, messageResponse{Message: welcomeMessage})
}

// TestRoute is a static connectivity check for the voice-agent platform.
func (h *Handler) TestRoute(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, messageResponse{Message: testRouteMessage})
}

// Health reports liveness and whether the database was reachable at start.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"database": h.store.Available(),
	})
}

// CollectUserInfo extracts a name and fishing location from the request
// body and stores them as a new user record.
func (h *Handler) CollectUserInfo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, detailResponse{Detail: "cannot read request body"})
		return
	}

	sub, err := intake.Parse(body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, detailResponse{Detail: intake.CoachingDetail})
		return
	}

	if !h.store.SaveUser(r.Context(), sub.FirstName, sub.FishingLocation) {
		respondJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Failed to save user information"})
		return
	}

	if h.interactions != nil {
		h.interactions.Append(logsink.Record{
			Timestamp:       time.Now(),
			RemoteAddr:      r.RemoteAddr,
			Endpoint:        r.URL.Path,
			FirstName:       sub.FirstName,
			FishingLocation: sub.FishingLocation,
		})
	}

	respondJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf(
			"Hey %s! Great to meet you. I know %s well - that's a fine spot for striped bass fishing. Let me help you figure out the best times to fish there based on the moon and tides.",
			sub.FirstName, sub.FishingLocation,
		),
	})
}

// FishingConditions renders the tide report for a stored user.
func (h *Handler) FishingConditions(w http.ResponseWriter, r *http.Request) {
	firstName := chi.URLParam(r, "firstName")

	user, err := h.store.LatestUserByName(r.Context(), firstName)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, detailResponse{
			Detail: fmt.Sprintf("No information found for %s", firstName),
		})
		return
	}
	if err != nil {
		h.logger.Error("User lookup failed", zap.String("firstName", firstName), zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, detailResponse{
			Detail: "Something went wrong looking up your information. Please try again later.",
		})
		return
	}

	report := h.composer.Report(r.Context(), user.FirstName, user.FishingLocation)
	respondJSON(w, http.StatusOK, messageResponse{Message: report})
}

// TakeNote stores a single global note.
func (h *Handler) TakeNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, detailResponse{Detail: "note is required"})
		return
	}

	if h.store.SaveNote(r.Context(), req.Note) {
		respondJSON(w, http.StatusOK, statusResponse{Status: "success"})
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{Status: "error"})
}

// GetNote returns the most recently stored note.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.LatestNote(r.Context())
	if err != nil {
		note = noteFallback
	}
	respondJSON(w, http.StatusOK, noteResponse{Note: note})
}

// Search proxies a query to the knowledge search upstream. Upstream
// failures collapse to a safe fallback string.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, detailResponse{Detail: "search_query is required"})
		return
	}

	result, err := h.search.Ask(r.Context(), req.SearchQuery)
	if err != nil {
		h.logger.Warn("Search upstream failed", zap.Error(err))
		result = noteFallback
	}
	respondJSON(w, http.StatusOK, resultResponse{Result: result})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
