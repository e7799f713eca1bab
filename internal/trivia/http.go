package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// EditorGuard authorizes mutating requests. A nil guard leaves the bank open.
type EditorGuard interface {
	Authorize(r *http.Request) error
}

// HTTPHandlers exposes the question bank over REST.
type HTTPHandlers struct {
	svc    *Service
	editor EditorGuard
	logger zerolog.Logger
}

// NewHTTPHandlers constructs the trivia HTTP handlers.
func NewHTTPHandlers(svc *Service, editor EditorGuard, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		editor: editor,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("list categories failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := PageFromQuery(r.URL.Query())

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		if errors.Is(err, ErrEmptyPage) {
			h.log(r).Warn().Int("page", int(page)).Msg("empty question page")
			httperrors.RespondNotFound(w)
			return
		}
		h.log(r).Error().Err(err).Msg("list questions failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("list categories failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"categories":      categories,
		"total_questions": result.Total,
	})
}

// CreateOrSearchQuestions handles POST /questions. A non-empty searchTerm
// searches; anything else is a new question.
func (h *HTTPHandlers) CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.log(r).Warn().Err(err).Msg("invalid question payload")
		httperrors.RespondUnprocessable(w)
		return
	}
	page := PageFromQuery(r.URL.Query())

	if req.IsSearch() {
		result, err := h.svc.SearchQuestions(r.Context(), *req.SearchTerm, page)
		if err != nil {
			h.log(r).Error().Err(err).Str("term", *req.SearchTerm).Msg("search questions failed")
			httperrors.RespondUnprocessable(w)
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"questions":       result.Questions,
			"total_questions": result.Total,
		})
		return
	}

	if !h.authorize(w, r) {
		return
	}

	created, result, err := h.svc.CreateQuestion(r.Context(), req, page)
	if err != nil {
		h.logFailure(r, err).Msg("create question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         created,
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if !h.authorize(w, r) {
		return
	}

	result, err := h.svc.DeleteQuestion(r.Context(), id, PageFromQuery(r.URL.Query()))
	if err != nil {
		// a missing question is reported like any other failure on this route
		h.logFailure(r, err).Int32("question_id", id).Msg("delete question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.QuestionsByCategory(r.Context(), id, PageFromQuery(r.URL.Query()))
	if err != nil {
		h.log(r).Error().Err(err).Int32("category", id).Msg("list category questions failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("list categories failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"categories":       categories,
		"current_category": id,
		"total_questions":  result.Total,
	})
}

// PlayQuiz handles POST /quizzes. An exhausted pool answers `"question": false`.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log(r).Warn().Err(err).Msg("read quiz payload failed")
		httperrors.RespondBadRequest(w)
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		httperrors.RespondBadRequest(w)
		return
	}

	var req QuizRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.log(r).Warn().Err(err).Msg("invalid quiz payload")
		httperrors.RespondBadRequest(w)
		return
	}

	next, err := h.svc.PlayQuiz(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidQuiz) {
			h.log(r).Warn().Err(err).Msg("invalid quiz payload")
			httperrors.RespondBadRequest(w)
			return
		}
		h.log(r).Error().Err(err).Msg("quiz play failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	var question interface{} = false
	if next != nil {
		question = next
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

func (h *HTTPHandlers) authorize(w http.ResponseWriter, r *http.Request) bool {
	if h.editor == nil {
		return true
	}
	if err := h.editor.Authorize(r); err != nil {
		h.log(r).Warn().Err(err).Msg("editor authorization failed")
		httperrors.RespondUnauthorized(w)
		return false
	}
	return true
}

// log returns the request-scoped logger installed by the server middleware.
func (h *HTTPHandlers) log(r *http.Request) *zerolog.Logger {
	logger := logging.FromContext(r.Context()).With().Str("component", "trivia_http").Logger()
	return &logger
}

// logFailure logs client-caused failures at warn and store failures at error.
func (h *HTTPHandlers) logFailure(r *http.Request, err error) *zerolog.Event {
	if errors.Is(err, ErrInvalidQuestion) || errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConstraint) {
		return h.log(r).Warn().Err(err)
	}
	return h.log(r).Error().Err(err)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}

func pathID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(id), true
}
