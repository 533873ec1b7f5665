package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question, category and quiz endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the trivia routes on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": CategoryMap(categories),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result, err := h.svc.ListPage(r.Context(), page)
	if err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	h.respondJSON(w, http.StatusOK, listQuestionsResponse{
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     CategoryMap(result.Categories),
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": created.ID,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}

	questions, err := h.svc.Search(r.Context(), req.SearchTerm)
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusOK, filteredQuestionsResponse{
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

// ListCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	questions, category, err := h.svc.ByCategory(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	current := category.Type
	h.respondJSON(w, http.StatusOK, filteredQuestionsResponse{
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: &current,
	})
}

// NextQuizQuestion handles POST /quizzes
func (h *HTTPHandlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	next, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	h.respondJSON(w, http.StatusOK, quizResponse{Question: next})
}

// fail maps err onto one of the three reported statuses. fallback is the
// route's status for anything that is not a known domain condition.
func (h *HTTPHandlers) fail(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	logger := logging.FromContext(r.Context())

	status := fallback
	switch {
	case errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrEmptySearchTerm),
		errors.Is(err, ErrQuizCategoryRequired):
		status = http.StatusNotFound
	case errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrInvalidQuestion):
		status = http.StatusUnprocessableEntity
	default:
		if malformedBody(err) {
			logger.Debug().Err(err).Int("status", status).Msg("malformed request body")
		} else {
			logger.Error().Err(err).Int("status", status).Msg("request failed")
		}
		httperrors.RespondError(w, status)
		return
	}

	logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	httperrors.RespondError(w, status)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

var (
	errEmptyBody    = errors.New("request body is empty")
	errTrailingData = errors.New("request body has data after the JSON value")
)

// decodeJSON reads exactly one bounded JSON value into v. An empty body is
// errEmptyBody so each route can decide whether that counts as "{}".
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func malformedBody(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
	)
	return errors.Is(err, errEmptyBody) ||
		errors.Is(err, errTrailingData) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &sizeErr)
}
