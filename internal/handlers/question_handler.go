package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/selection"
	"prepquiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	Service *service.QuestionService
}

func NewQuestionHandler(s *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{Service: s}
}

// CreateQuestion stores an author-supplied question.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if err := h.Service.CreateQuestion(context.Background(), &question); err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Question is missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create question",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, question)
}

// ListQuestions returns active questions matching the query filters, shaped
// for quiz takers.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := selection.TopicFilter{
		Subject:    c.Query("subject"),
		TopicID:    c.Query("topic_id"),
		Difficulty: c.Query("difficulty"),
	}

	questions, err := h.Service.ListQuestions(context.Background(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list questions",
			"details": err.Error(),
		})
		return
	}

	shaped := make([]models.Question, len(questions))
	for i, q := range questions {
		shaped[i] = q.Shaped()
	}
	c.JSON(http.StatusOK, gin.H{"questions": shaped, "count": len(shaped)})
}

// GetQuestion returns a question with answers intact, for authors.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	question, err := h.Service.GetQuestion(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if err := h.Service.UpdateQuestion(context.Background(), c.Param("id"), update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update question",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question updated"})
}

// DeleteQuestion deactivates the question.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.Service.DeleteQuestion(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete question",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deactivated"})
}

// CreateTopic resolves or creates the topic for the given 4-tuple.
func (h *QuestionHandler) CreateTopic(c *gin.Context) {
	var key models.TopicKey
	if err := c.ShouldBindJSON(&key); err != nil || key.Subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic key"})
		return
	}

	topic, err := h.Service.CreateTopic(context.Background(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create topic",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// ListTopics lists active topics for a subject.
func (h *QuestionHandler) ListTopics(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject query parameter is required"})
		return
	}

	topics, err := h.Service.ListTopics(context.Background(), subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list topics",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics, "count": len(topics)})
}
