package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/qreview/internal/database"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupAPI(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	t.Setenv("DB_TYPE", "")
	t.Setenv("DATA_DIR", t.TempDir())
	require.NoError(t, database.Connect())
	t.Cleanup(func() { database.Close() })

	h := NewHandler(20)
	h.now = func() time.Time { return testNow }
	return h, NewRouter(h)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func createQuestion(t *testing.T, router http.Handler, content string, qType, subject string) string {
	t.Helper()
	rec, body := doJSON(t, router, "POST", "/api/v1/questions", map[string]interface{}{
		"content": content,
		"answer":  "the answer",
		"type":    qType,
		"subject": subject,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return body["id"].(string)
}

func TestHealthCheck(t *testing.T) {
	_, router := setupAPI(t)
	rec, body := doJSON(t, router, "GET", "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateQuestionValidation(t *testing.T) {
	_, router := setupAPI(t)

	rec, _ := doJSON(t, router, "POST", "/api/v1/questions", map[string]interface{}{
		"type": "missed_problem", "subject": "math",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "content is required")

	rec, _ = doJSON(t, router, "POST", "/api/v1/questions", map[string]interface{}{
		"content": "x", "type": "pop_quiz", "subject": "math",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown type")

	rec, _ = doJSON(t, router, "POST", "/api/v1/questions", map[string]interface{}{
		"content": "x", "type": "missed_problem", "subject": "history",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown subject")
}

func TestQuestionCRUD(t *testing.T) {
	_, router := setupAPI(t)
	id := createQuestion(t, router, "Solve x^2 = 4", "missed_problem", "math")

	rec, body := doJSON(t, router, "GET", "/api/v1/questions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Solve x^2 = 4", body["content"])
	assert.Equal(t, float64(0), body["review_count"])

	rec, body = doJSON(t, router, "PUT", "/api/v1/questions/"+id, map[string]interface{}{
		"content": "Solve x^2 = 9", "answer": "x = 3 or x = -3",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Solve x^2 = 9", body["content"])

	rec, _ = doJSON(t, router, "DELETE", "/api/v1/questions/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, "GET", "/api/v1/questions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMasterQuestion(t *testing.T) {
	_, router := setupAPI(t)
	id := createQuestion(t, router, "Define osmosis", "missed_problem", "other")

	rec, body := doJSON(t, router, "POST", "/api/v1/questions/"+id+"/master", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["is_mastered"])
	assert.Equal(t, float64(5), body["mastery_level"])

	rec, _ = doJSON(t, router, "POST", "/api/v1/questions/missing/master", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionFlowPersistsOnCompletion(t *testing.T) {
	_, router := setupAPI(t)
	id := createQuestion(t, router, "Integrate sin(x)", "missed_problem", "math")

	rec, body := doJSON(t, router, "POST", "/api/v1/sessions", map[string]interface{}{})
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := body["id"].(string)
	assert.Equal(t, false, body["done"])
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, "Mixed Review", body["label"])

	question := body["question"].(map[string]interface{})
	assert.Equal(t, id, question["id"])
	_, hasAnswer := question["answer"]
	assert.False(t, hasAnswer, "solution stays hidden until reveal")

	// Rating before reveal is rejected and changes nothing
	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/rate", map[string]interface{}{"quality": 5})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/reveal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the answer", body["answer"])

	// An out-of-range rating leaves the session revealed
	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/rate", map[string]interface{}{"quality": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/rate", map[string]interface{}{"quality": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["done"])
	assert.Equal(t, float64(1), body["reviewed"])

	// Scheduling state was batch-written
	rec, body = doJSON(t, router, "GET", "/api/v1/questions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["review_count"])
	assert.InDelta(t, 2.6, body["easiness_factor"].(float64), 1e-9)
	next, err := time.Parse(time.RFC3339, body["next_review_date"].(string))
	require.NoError(t, err)
	assert.True(t, next.Equal(testNow.Add(24*time.Hour)))

	// One review log was appended
	req := httptest.NewRequest("GET", "/api/v1/logs", nil)
	recLogs := httptest.NewRecorder()
	router.ServeHTTP(recLogs, req)
	require.Equal(t, http.StatusOK, recLogs.Code)
	var logs []map[string]interface{}
	require.NoError(t, json.Unmarshal(recLogs.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, float64(1), logs[0]["count"])
	assert.Equal(t, "Mixed Review", logs[0]["subject"])

	// The handle is gone once the session completed
	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/rate", map[string]interface{}{"quality": 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSessionEmptyPool(t *testing.T) {
	_, router := setupAPI(t)

	rec, body := doJSON(t, router, "POST", "/api/v1/sessions", map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["done"])
	assert.Equal(t, true, body["empty"])
	assert.Equal(t, float64(0), body["total"])

	// Never stored, so the handle does not resolve
	sessionID := body["id"].(string)
	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/reveal", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAbandonSessionPersistsNothing(t *testing.T) {
	_, router := setupAPI(t)
	id := createQuestion(t, router, "Name the noble gases", "missed_problem", "chemistry")

	rec, body := doJSON(t, router, "POST", "/api/v1/sessions", map[string]interface{}{})
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := body["id"].(string)

	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/reveal", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, "DELETE", "/api/v1/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, router, "GET", "/api/v1/questions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["review_count"], "abandon writes nothing")

	rec, _ = doJSON(t, router, "DELETE", "/api/v1/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSessionWithFilters(t *testing.T) {
	_, router := setupAPI(t)
	createQuestion(t, router, "math example", "worked_example", "math")
	createQuestion(t, router, "math missed", "missed_problem", "math")
	createQuestion(t, router, "physics missed", "missed_problem", "physics")

	rec, body := doJSON(t, router, "POST", "/api/v1/sessions", map[string]interface{}{
		"subject": "math", "type": "worked_example",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, "Math - Worked Example Drill", body["label"])

	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions", map[string]interface{}{"subject": "geography"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats(t *testing.T) {
	_, router := setupAPI(t)
	createQuestion(t, router, "due now", "missed_problem", "math")
	masteredID := createQuestion(t, router, "already known", "missed_problem", "physics")
	rec, _ := doJSON(t, router, "POST", "/api/v1/questions/"+masteredID+"/master", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, router, "GET", "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_questions"])
	assert.Equal(t, float64(1), stats["mastered_count"])
	assert.Equal(t, float64(1), stats["due_count"])

	bySubject := body["due_by_subject"].(map[string]interface{})
	assert.Equal(t, float64(1), bySubject["math"])
	assert.Equal(t, float64(0), bySubject["physics"])
}

func TestReflections(t *testing.T) {
	_, router := setupAPI(t)

	rec, _ := doJSON(t, router, "PUT", "/api/v1/reflections/not-a-date", map[string]interface{}{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := doJSON(t, router, "PUT", "/api/v1/reflections/2025-03-10", map[string]interface{}{
		"content": "Mixed up the chain rule again.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-10", body["date"])

	req := httptest.NewRequest("GET", "/api/v1/reflections", nil)
	recList := httptest.NewRecorder()
	router.ServeHTTP(recList, req)
	require.Equal(t, http.StatusOK, recList.Code)
	var reflections []map[string]interface{}
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &reflections))
	require.Len(t, reflections, 1)
	assert.Equal(t, "Mixed up the chain rule again.", reflections[0]["content"])
}

func TestMultiQuestionSessionAdvances(t *testing.T) {
	_, router := setupAPI(t)
	for i := 0; i < 3; i++ {
		createQuestion(t, router, fmt.Sprintf("question %d", i), "missed_problem", "math")
	}

	rec, body := doJSON(t, router, "POST", "/api/v1/sessions", map[string]interface{}{})
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := body["id"].(string)
	require.Equal(t, float64(3), body["total"])

	for i := 0; i < 2; i++ {
		rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/reveal", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec, body = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/rate", map[string]interface{}{"quality": 4})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["done"])
		assert.Equal(t, float64(i+2), body["position"])
	}

	rec, _ = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/reveal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, body = doJSON(t, router, "POST", "/api/v1/sessions/"+sessionID+"/rate", map[string]interface{}{"quality": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["done"])
	assert.Equal(t, float64(3), body["reviewed"])
}
