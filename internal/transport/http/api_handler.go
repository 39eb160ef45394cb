package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"classquiz-service/internal/app"
	"classquiz-service/internal/domain"
)

// APIHandler exposes the quiz access, submission, and standings use cases
// over JSON.
type APIHandler struct {
	service    *app.QuizService
	identity   IdentityResolver
	defaultTop int
}

func NewAPIHandler(service *app.QuizService, identity IdentityResolver, defaultTop int) *APIHandler {
	return &APIHandler{service: service, identity: identity, defaultTop: defaultTop}
}

// Register mounts the API routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quizzes/{id}", h.getQuiz)
	mux.HandleFunc("POST /api/quizzes/{id}/unlock", h.unlockQuiz)
	mux.HandleFunc("POST /api/quizzes/{id}/attempts", h.submitAttempt)
	mux.HandleFunc("GET /api/quizzes/{id}/leaderboard", h.quizLeaderboard)
	mux.HandleFunc("GET /api/quizzes/{id}/stats", h.quizStats)
	mux.HandleFunc("GET /api/leaderboard", h.globalLeaderboard)
	mux.HandleFunc("GET /api/attempts/my", h.myAttempts)
	mux.HandleFunc("GET /api/reports/teacher", h.teacherReport)
	mux.HandleFunc("GET /api/join/{code}", h.resolveJoinCode)
}

// getQuiz resolves the requester's view of a quiz. A join code, when the
// quiz requires one, is supplied as the "key" query parameter.
func (h *APIHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	view, err := h.service.ResolveQuizView(r.Context(), r.PathValue("id"), requester, r.URL.Query().Get("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, view)
}

type unlockRequest struct {
	Password string `json:"password"`
}

// unlockQuiz resolves the view of a password-protected quiz.
func (h *APIHandler) unlockQuiz(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A malformed body is treated like a wrong password so the
		// response shape never reveals whether the quiz is protected.
		writeError(w, domain.ErrAccessDenied)
		return
	}
	view, err := h.service.ResolveQuizView(r.Context(), r.PathValue("id"), requester, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, view)
}

type submitRequest struct {
	Answers domain.AnswerSet `json:"answers"`
}

func (h *APIHandler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var subErr *domain.SubmissionError
		if errors.As(err, &subErr) {
			writeError(w, subErr)
			return
		}
		writeError(w, &domain.SubmissionError{})
		return
	}
	receipt, err := h.service.SubmitAttempt(r.Context(), r.PathValue("id"), requester, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *APIHandler) quizLeaderboard(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	standings, err := h.service.GetStandings(r.Context(), r.PathValue("id"), requester, h.topN(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *APIHandler) globalLeaderboard(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	standings, err := h.service.GetStandings(r.Context(), "", requester, h.topN(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *APIHandler) quizStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.QuizStats(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *APIHandler) myAttempts(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	attempts, err := h.service.StudentAttempts(r.Context(), requester)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

func (h *APIHandler) teacherReport(w http.ResponseWriter, r *http.Request) {
	requester := h.identity.Resolve(r)
	reports, err := h.service.TeacherReport(r.Context(), requester)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

func (h *APIHandler) resolveJoinCode(w http.ResponseWriter, r *http.Request) {
	match, err := h.service.ResolveJoinCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *APIHandler) topN(r *http.Request) int {
	if raw := r.URL.Query().Get("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return h.defaultTop
}

// writeView flattens the resolved view: clients receive either the full
// quiz or the sanitized one, not a wrapper distinguishing them.
func writeView(w http.ResponseWriter, view domain.QuizView) {
	if view.Full != nil {
		writeJSON(w, http.StatusOK, view.Full)
		return
	}
	writeJSON(w, http.StatusOK, view.Sanitized)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrQuizNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSubmission):
		status = http.StatusBadRequest
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
