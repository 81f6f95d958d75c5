// test/e2e/e2e_test.go
//
// Full in-process flow: fixture artifact bundle, Redis-backed sessions on
// miniredis, a stubbed text-generation endpoint, and the real router. Drives
// the same call sequence the front-end makes.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenverify/internal/common/config"
	"greenverify/internal/common/database"
	"greenverify/internal/common/logger"
	"greenverify/internal/genai"
	"greenverify/internal/model"
	"greenverify/internal/model/modeltest"
	"greenverify/internal/narrative"
	"greenverify/internal/predictor"
	"greenverify/internal/server"
	"greenverify/internal/session"
)

type stack struct {
	router   *gin.Engine
	sessions session.Store
}

// newStack wires the whole service against test doubles. genaiText is the
// canned completion the stub endpoint returns; empty means no genai client.
func newStack(t *testing.T, genaiText string) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()

	arts, err := model.Load(modeltest.WriteBundle(t, t.TempDir()))
	require.NoError(t, err)
	pipeline := predictor.NewPipeline(arts, log)

	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	sessions := session.NewRedisStore(redisClient, time.Hour)
	t.Cleanup(func() { sessions.Close() })

	var client genai.Client
	if genaiText != "" {
		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"candidates": []interface{}{
					map[string]interface{}{
						"content": map[string]interface{}{
							"parts": []interface{}{map[string]interface{}{"text": genaiText}},
						},
					},
				},
			})
		}))
		t.Cleanup(stub.Close)

		gemini, err := genai.NewGemini(genai.GeminiOptions{
			APIKey:  "e2e-key",
			Model:   "gemini-test",
			BaseURL: stub.URL,
		}, log)
		require.NoError(t, err)
		client = gemini
	}

	srv := server.New(server.Options{
		Config:   &config.Config{},
		Logger:   log,
		Pipeline: pipeline,
		Sessions: sessions,
		Narrator: narrative.NewGenerator(client, 0, log),
	})
	return &stack{router: srv.Router(), sessions: sessions}
}

func (s *stack) postForm(t *testing.T, path string, form url.Values) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *stack) postJSON(t *testing.T, path string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func lowRatingForm() url.Values {
	return url.Values{
		"Building_Type":          {"Industrial"},
		"Climate_Zone":           {"Hot_Dry"},
		"Energy_Efficiency":      {"10"},
		"Water_Conservation":     {"20"},
		"Waste_Management":       {"0.1"},
		"Renewable_Energy_Usage": {"5"},
		"Indoor_Air_Quality":     {"30"},
		"Social_Benefits":        {"0.2"},
		"Air_Pollution_Control":  {"0.1"},
	}
}

func TestFullFlow_WithGenAI(t *testing.T) {
	completion := "Low efficiency capped the rating.\nFOLLOW_UP_QUESTIONS:\n1. [How do I improve insulation?]\n2. [Is solar worth it?]\n3. [What about water reuse?]"
	s := newStack(t, completion)

	predictBody := s.postForm(t, "/predict", lowRatingForm())
	require.Equal(t, true, predictBody["success"])
	assert.Equal(t, float64(1), predictBody["prediction"])
	sessionID := predictBody["session_id"].(string)
	require.NotEmpty(t, sessionID)

	assessBody := s.postJSON(t, "/get_initial_assessment",
		map[string]interface{}{"session_id": sessionID})
	assert.Equal(t, true, assessBody["success"])
	assert.Contains(t, assessBody["assessment"], "Low efficiency capped the rating.")

	sectionBody := s.postJSON(t, "/get_section",
		map[string]interface{}{"session_id": sessionID, "section_type": "improvements"})
	assert.Equal(t, true, sectionBody["success"])
	assert.NotEmpty(t, sectionBody["content"])

	chatBody := s.postJSON(t, "/chat",
		map[string]interface{}{"session_id": sessionID, "question": "Where do I start?"})
	assert.Equal(t, true, chatBody["success"])
	assert.Equal(t, "Low efficiency capped the rating.", chatBody["response"])
	suggestions := chatBody["suggestions"].([]interface{})
	require.Len(t, suggestions, 3)
	assert.Equal(t, "How do I improve insulation?", suggestions[0])
}

func TestFullFlow_FallbackMode(t *testing.T) {
	s := newStack(t, "")

	predictBody := s.postForm(t, "/predict", lowRatingForm())
	require.Equal(t, true, predictBody["success"])
	sessionID := predictBody["session_id"].(string)

	assessBody := s.postJSON(t, "/get_initial_assessment",
		map[string]interface{}{"session_id": sessionID})
	assert.Equal(t, true, assessBody["success"])
	assert.Equal(t, narrative.FallbackAssessment(1), assessBody["assessment"])

	chatBody := s.postJSON(t, "/chat",
		map[string]interface{}{"session_id": sessionID, "question": "anything"})
	assert.Equal(t, true, chatBody["success"])
	assert.Contains(t, chatBody["response"], "offline mode")
}

func TestFullFlow_IdenticalInputsGetDistinctSessions(t *testing.T) {
	s := newStack(t, "")

	first := s.postForm(t, "/predict", lowRatingForm())
	second := s.postForm(t, "/predict", lowRatingForm())
	require.Equal(t, true, first["success"])
	require.Equal(t, true, second["success"])

	assert.Equal(t, first["prediction"], second["prediction"])
	assert.Equal(t, first["confidence"], second["confidence"])
	assert.NotEqual(t, first["session_id"], second["session_id"])
}

func TestFullFlow_Health(t *testing.T) {
	s := newStack(t, "irrelevant")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["model_loaded"])
	assert.Equal(t, true, body["gemini_available"])
}
