package handlers

import (
	"context"
	"errors"
	"net/http"

	"prepquiz-service/internal/live"
	"prepquiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type LiveHandler struct {
	Hub     *live.Hub
	Quizzes *service.QuizService
}

func NewLiveHandler(hub *live.Hub, quizzes *service.QuizService) *LiveHandler {
	return &LiveHandler{Hub: hub, Quizzes: quizzes}
}

// CreateRoom selects questions and opens a lobby hosted by the caller.
func (h *LiveHandler) CreateRoom(c *gin.Context) {
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

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	questions, err := h.Quizzes.GenerateForCreator(context.Background(), req.Subject, req.TopicID, req.Difficulty, req.Count)
	if err != nil {
		status, msg := quizErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	room := h.Hub.CreateRoom(userID, questions)
	c.JSON(http.StatusCreated, gin.H{
		"room_id":   room.ID,
		"join_code": room.Code,
		"questions": len(room.Questions),
	})
}

// JoinRoom adds the caller to a lobby by join code.
func (h *LiveHandler) JoinRoom(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
		Name string `json:"name"`
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
	if req.Name == "" {
		req.Name = userID
	}

	room, err := h.Hub.Join(req.Code, userID, req.Name)
	if err != nil {
		status, msg := liveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id": room.ID,
		"players": len(room.Participants),
	})
}

// LeaveRoom removes the caller from the room.
func (h *LiveHandler) LeaveRoom(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	if err := h.Hub.Leave(c.Param("id"), userID); err != nil {
		status, msg := liveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left the room"})
}

// StartRoom begins the quiz; host only.
func (h *LiveHandler) StartRoom(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	question, err := h.Hub.Start(c.Param("id"), userID)
	if err != nil {
		status, msg := liveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question.Shaped()})
}

// NextQuestion advances the room; host only. The final advance returns the
// scoreboard instead of a question.
func (h *LiveHandler) NextQuestion(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	roomID := c.Param("id")
	question, err := h.Hub.NextQuestion(roomID, userID)
	if errors.Is(err, live.ErrNoMoreQuestions) {
		board, _ := h.Hub.Scoreboard(roomID)
		c.JSON(http.StatusOK, gin.H{"finished": true, "scoreboard": board})
		return
	}
	if err != nil {
		status, msg := liveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question.Shaped()})
}

// Answer grades the caller's answer to the current question.
func (h *LiveHandler) Answer(c *gin.Context) {
	var req struct {
		Answer string `json:"answer" binding:"required"`
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

	correct, err := h.Hub.Answer(c.Param("id"), userID, req.Answer)
	if err != nil {
		status, msg := liveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_correct": correct})
}

// Scoreboard returns the room standings.
func (h *LiveHandler) Scoreboard(c *gin.Context) {
	board, err := h.Hub.Scoreboard(c.Param("id"))
	if err != nil {
		status, msg := liveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scoreboard": board})
}

func liveErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, live.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, live.ErrRoomNotJoinable):
		return http.StatusConflict, "Room is not accepting participants"
	case errors.Is(err, live.ErrNotHost):
		return http.StatusForbidden, "Only the host may do that"
	case errors.Is(err, live.ErrAlreadyJoined):
		return http.StatusConflict, "Already in the room"
	case errors.Is(err, live.ErrAlreadyAnswered):
		return http.StatusConflict, "Already answered this question"
	case errors.Is(err, live.ErrRoomFinished):
		return http.StatusConflict, "Room is finished"
	case errors.Is(err, live.ErrHostCannotLeave):
		return http.StatusConflict, "The host cannot leave the room"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
