package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/review"
	"github.com/example/qreview/internal/session"
	"github.com/example/qreview/internal/spaced_repetition"
	"github.com/example/qreview/pkg/models"
)

// Handler bundles the repositories and the in-flight review sessions.
// Sessions live in memory only: abandoning one persists nothing.
type Handler struct {
	questions   *database.QuestionRepository
	logs        *database.ReviewLogRepository
	reflections *database.ReflectionRepository

	defaultLimit int
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewHandler creates a handler with the given default session size.
func NewHandler(defaultLimit int) *Handler {
	return &Handler{
		questions:    database.NewQuestionRepository(),
		logs:         database.NewReviewLogRepository(),
		reflections:  database.NewReflectionRepository(),
		defaultLimit: defaultLimit,
		now:          time.Now,
		sessions:     make(map[string]*session.Session),
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck reports service liveness
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- Questions ----

type questionRequest struct {
	Content  string              `json:"content"`
	Answer   string              `json:"answer"`
	Analysis string              `json:"analysis"`
	Type     models.QuestionType `json:"type"`
	Subject  models.Subject      `json:"subject"`
	Source   string              `json:"source"`
	Tags     []string            `json:"tags"`
}

// GetQuestions returns the whole question bank
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.GetAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// CreateQuestion adds a new question with fresh scheduling state
func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	if !req.Type.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid question type")
		return
	}
	if !req.Subject.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid subject")
		return
	}

	q := models.NewQuestion(uuid.NewString(), req.Type, req.Subject, h.now())
	q.Content = req.Content
	q.Answer = req.Answer
	q.Analysis = req.Analysis
	q.Source = req.Source
	q.Tags = req.Tags

	if err := h.questions.Create(&q); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, q)
}

// GetQuestion returns a single question
func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.GetByID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// UpdateQuestion edits a question's content fields. Scheduling state is owned
// by the review flow and cannot be changed here.
func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.GetByID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}

	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content != "" {
		q.Content = req.Content
	}
	if req.Type != "" {
		if !req.Type.IsValid() {
			respondError(w, http.StatusBadRequest, "invalid question type")
			return
		}
		q.Type = req.Type
	}
	if req.Subject != "" {
		if !req.Subject.IsValid() {
			respondError(w, http.StatusBadRequest, "invalid subject")
			return
		}
		q.Subject = req.Subject
	}
	q.Answer = req.Answer
	q.Analysis = req.Analysis
	q.Source = req.Source
	q.Tags = req.Tags

	if err := h.questions.Update(q); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// DeleteQuestion removes a question
func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.questions.Delete(mux.Vars(r)["id"]); err != nil {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MasterQuestion applies the manual mastery override
func (h *Handler) MasterQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.GetByID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	updated := review.MarkMastered(*q)
	if err := h.questions.Update(&updated); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// ---- Dashboard ----

// GetStats returns bank statistics and due counts per subject
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.GetAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logs, err := h.logs.GetRecent(models.MaxReviewLogs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := h.now()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats":          review.ComputeStats(questions, logs, now),
		"due_by_subject": review.DueBySubject(questions, now),
	})
}

// GetLogs returns the recent review logs
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.GetRecent(models.MaxReviewLogs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

// ---- Reflections ----

// GetReflections returns all daily reflections
func (h *Handler) GetReflections(w http.ResponseWriter, r *http.Request) {
	reflections, err := h.reflections.GetAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, reflections)
}

// UpsertReflection creates or replaces the reflection for a day
func (h *Handler) UpsertReflection(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reflection := models.Reflection{Date: date, Content: req.Content}
	if err := h.reflections.Upsert(&reflection); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, reflection)
}

// ---- Review sessions ----

type startSessionRequest struct {
	Subject  models.Subject      `json:"subject"`
	Type     models.QuestionType `json:"type"`
	Limit    int                 `json:"limit"`
	Practice bool                `json:"practice"`
}

// presentedQuestion is the question view shown before reveal: the solution
// stays hidden until the session transitions to Revealed.
type presentedQuestion struct {
	ID            string              `json:"id"`
	Content       string              `json:"content"`
	Type          models.QuestionType `json:"type"`
	Subject       models.Subject      `json:"subject"`
	Tags          []string            `json:"tags,omitempty"`
	IsFromExample bool                `json:"is_from_example"`
}

func presentView(q *models.Question) *presentedQuestion {
	if q == nil {
		return nil
	}
	return &presentedQuestion{
		ID:            q.ID,
		Content:       q.Content,
		Type:          q.Type,
		Subject:       q.Subject,
		Tags:          q.Tags,
		IsFromExample: q.IsFromExample,
	}
}

// StartSession builds a review pool from the filters and opens a session.
// An empty pool returns a session that is already done.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subject != "" && !req.Subject.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid subject")
		return
	}
	if req.Type != "" && !req.Type.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid question type")
		return
	}

	questions, err := h.questions.GetAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := review.PoolOptions{Subject: req.Subject, Type: req.Type, Limit: req.Limit}
	if opts.Limit == 0 && req.Practice {
		opts.Limit = h.defaultLimit
	}

	var pool []models.Question
	if req.Practice {
		pool = review.PracticePool(questions, opts)
	} else {
		pool = review.DuePool(questions, h.now(), opts)
	}

	sess := session.New(pool, review.PoolLabel(opts, req.Practice), session.WithClock(h.now))
	id := uuid.NewString()

	resp := map[string]interface{}{
		"id":    id,
		"label": sess.Label(),
		"total": len(pool),
		"done":  sess.Finished(),
		"empty": sess.Empty(),
	}
	if sess.Finished() {
		// Nothing to review; never stored, nothing to persist.
		respondJSON(w, http.StatusOK, resp)
		return
	}

	h.mu.Lock()
	h.sessions[id] = sess
	h.mu.Unlock()

	current, _ := sess.Current()
	resp["question"] = presentView(current)
	respondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) lookupSession(id string) *session.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[id]
}

// RevealQuestion exposes the current question's solution
func (h *Handler) RevealQuestion(w http.ResponseWriter, r *http.Request) {
	sess := h.lookupSession(mux.Vars(r)["id"])
	if sess == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	q, err := sess.Reveal()
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// RateQuestion records a rating and advances the session. On the final
// rating it applies every result, batch-writes the store, appends one review
// log and returns the session summary.
func (h *Handler) RateQuestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess := h.lookupSession(id)
	if sess == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req struct {
		Quality int `json:"quality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	done, next, err := sess.Rate(spaced_repetition.QualityResponse(req.Quality))
	switch {
	case errors.Is(err, spaced_repetition.ErrInvalidQuality):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, session.ErrNotRevealed), errors.Is(err, session.ErrFinished):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !done {
		current, total := sess.Progress()
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"done":     false,
			"position": current,
			"total":    total,
			"question": presentView(next),
		})
		return
	}

	summary, err := h.completeSession(id, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// completeSession persists the batch update and the review log, then drops
// the session handle.
func (h *Handler) completeSession(id string, sess *session.Session) (map[string]interface{}, error) {
	results, err := sess.Results()
	if err != nil {
		return nil, err
	}

	questions, err := h.questions.GetAll()
	if err != nil {
		return nil, err
	}

	now := h.now()
	updated := review.ApplyResults(questions, results, now)
	if err := h.questions.UpdateBatch(updated); err != nil {
		return nil, err
	}

	logEntry := review.NewLog(uuid.NewString(), sess.Label(), len(results), now)
	if err := h.logs.Create(&logEntry); err != nil {
		return nil, err
	}

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	return map[string]interface{}{
		"done":     true,
		"reviewed": len(results),
		"log":      logEntry,
	}, nil
}

// AbandonSession discards an in-flight session without persisting anything
func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}
