package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "greenverify/internal/common/errors"
	"greenverify/internal/common/metrics"
	"greenverify/internal/common/validation"
	"greenverify/internal/models"
	"greenverify/internal/predictor"
	"greenverify/internal/session"

	"github.com/gin-gonic/gin"
)

// The front-end expects HTTP 200 with success:false for business failures,
// so every handler answers 200 and signals problems in the body.

func (s *Server) handleIndex(c *gin.Context) {
	status := "Could not load pre-trained model files."
	var features []string
	options := map[string][]string{}
	if s.pipeline != nil {
		status = "Pre-trained model loaded successfully!"
		features = s.pipeline.Schema().Features
		options = s.pipeline.CategoricalOptions()
	}

	data := gin.H{
		"TrainStatus":  status,
		"ModelLoaded":  s.pipeline != nil,
		"FeatureNames": features,
		"Options":      options,
	}

	if !s.htmlLoaded {
		c.JSON(http.StatusOK, data)
		return
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) handlePredict(c *gin.Context) {
	if s.pipeline == nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusOK, gin.H{"error": "Model not available"})
		return
	}

	start := time.Now()
	rec := predictor.Normalize(c.PostForm, s.pipeline.Schema())

	if rec.IsEmpty() {
		metrics.PredictionsTotal.WithLabelValues("warning").Inc()
		c.JSON(http.StatusOK, gin.H{
			"warning": true,
			"message": "This building is not certified.",
		})
		return
	}

	prediction, err := s.pipeline.Predict(rec)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		s.logger.Error("prediction failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusOK, gin.H{"error": fmt.Sprintf("Prediction error: %v", err)})
		return
	}
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	record := &models.SessionRecord{
		Inputs:        rec.InputsMap(),
		Rating:        prediction.Rating,
		Confidence:    prediction.Confidence,
		Probabilities: prediction.Probabilities,
	}
	sessionID, err := s.sessions.Put(c.Request.Context(), record)
	if err != nil {
		metrics.SessionStoreErrors.Inc()
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		s.logger.Error("session write failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusOK, gin.H{"error": fmt.Sprintf("Prediction error: %v", err)})
		return
	}

	if s.audit != nil {
		if err := s.audit.RecordPrediction(c.Request.Context(), record); err != nil {
			s.logger.Warn("audit insert failed", map[string]interface{}{"error": err.Error()})
		}
	}

	metrics.PredictionsTotal.WithLabelValues("success").Inc()
	metrics.PredictionRating.WithLabelValues(strconv.Itoa(prediction.Rating)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"prediction":    prediction.Rating,
		"probabilities": prediction.Probabilities,
		"confidence":    prediction.Confidence,
		"session_id":    sessionID,
	})
}

func (s *Server) handleInitialAssessment(c *gin.Context) {
	body, ok := s.bindAndValidate(c, validation.SessionRequestSchema)
	if !ok {
		return
	}

	record, ok := s.fetchSession(c, body["session_id"].(string))
	if !ok {
		return
	}

	assessment := s.narrator.InitialAssessment(c.Request.Context(), record.Inputs, record.Rating)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": assessment,
	})
}

func (s *Server) handleSection(c *gin.Context) {
	body, ok := s.bindAndValidate(c, validation.SectionRequestSchema)
	if !ok {
		return
	}

	record, ok := s.fetchSession(c, body["session_id"].(string))
	if !ok {
		return
	}

	content, err := s.narrator.Section(
		c.Request.Context(), record.Inputs, record.Rating, body["section_type"].(string))
	if err != nil {
		c.JSON(http.StatusOK, s.errs.Envelope(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"content": content,
	})
}

func (s *Server) handleChat(c *gin.Context) {
	body, ok := s.bindAndValidate(c, validation.ChatRequestSchema)
	if !ok {
		return
	}

	record, ok := s.fetchSession(c, body["session_id"].(string))
	if !ok {
		return
	}

	answer := s.narrator.Chat(
		c.Request.Context(), record.Inputs, record.Rating, body["question"].(string))
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"response":    answer.Response,
		"suggestions": answer.Suggestions,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"model_loaded":     s.pipeline != nil,
		"gemini_available": s.narrator.Available(),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

// bindAndValidate decodes the JSON body and checks it against schema. On
// failure it writes the error envelope and returns ok=false.
func (s *Server) bindAndValidate(c *gin.Context, schema map[string]interface{}) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Invalid request body"})
		return nil, false
	}
	if err := validation.Validate(body, schema); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return nil, false
	}
	return body, true
}

// fetchSession loads the session record or writes the not-found envelope.
func (s *Server) fetchSession(c *gin.Context, id string) (*models.SessionRecord, bool) {
	record, err := s.sessions.Get(c.Request.Context(), id)
	if err == session.ErrNotFound {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Session not found"})
		return nil, false
	}
	if err != nil {
		metrics.SessionStoreErrors.Inc()
		c.JSON(http.StatusOK, s.errs.Envelope(apperrors.NewSessionStoreError(err)))
		return nil, false
	}
	return record, true
}
