package handlers

import (
	"context"
	"errors"
	"net/http"

	"prepquiz-service/internal/selection"
	"prepquiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

// StartQuiz opens an adaptive quiz session for the caller.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		TopicID string `json:"topic_id"`
		Mode    string `json:"mode"`
		Count   int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	result, err := h.Service.StartQuiz(context.Background(), userID, service.StartQuizRequest{
		Subject: req.Subject,
		TopicID: req.TopicID,
		Mode:    req.Mode,
		Count:   req.Count,
	})
	if err != nil {
		status, msg := quizErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// SubmitAnswer grades one answer within the caller's session.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		QuestionID          string  `json:"question_id" binding:"required"`
		SelectedAnswer      string  `json:"selected_answer" binding:"required"`
		ResponseTimeSeconds float64 `json:"response_time_seconds"`
		Confidence          string  `json:"confidence"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	result, err := h.Service.SubmitAnswer(context.Background(), userID, c.Param("id"), service.SubmitAnswerRequest{
		QuestionID:          req.QuestionID,
		SelectedAnswer:      req.SelectedAnswer,
		ResponseTimeSeconds: req.ResponseTimeSeconds,
		Confidence:          req.Confidence,
	})
	if err != nil {
		status, msg := quizErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSession returns the caller's session.
func (h *QuizHandler) GetSession(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	session, err := h.Service.GetSession(context.Background(), userID, c.Param("id"))
	if err != nil {
		status, msg := quizErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, session)
}

// EndSession marks the caller's session completed.
func (h *QuizHandler) EndSession(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	session, err := h.Service.EndSession(context.Background(), userID, c.Param("id"))
	if err != nil {
		status, msg := quizErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Generate returns questions with answers intact, for quiz authors.
func (h *QuizHandler) Generate(c *gin.Context) {
	var req struct {
		Subject    string `json:"subject" binding:"required"`
		TopicID    string `json:"topic_id"`
		Difficulty string `json:"difficulty"`
		Count      int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	questions, err := h.Service.GenerateForCreator(context.Background(), req.Subject, req.TopicID, req.Difficulty, req.Count)
	if err != nil {
		status, msg := quizErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

func quizErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidMode):
		return http.StatusBadRequest, "Invalid quiz mode"
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, "Session not found"
	case errors.Is(err, service.ErrNotSessionOwner):
		return http.StatusForbidden, "Session belongs to another user"
	case errors.Is(err, service.ErrQuestionNotInSession):
		return http.StatusBadRequest, "Question is not part of this session"
	case errors.Is(err, service.ErrQuestionNotFound):
		return http.StatusNotFound, "Question not found"
	case errors.Is(err, selection.ErrNoQuestions):
		return http.StatusConflict, "No questions available for this subject"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
