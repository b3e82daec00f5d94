package live

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sort"
	"sync"
	"time"

	"prepquiz-service/internal/models"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room is not accepting participants")
	ErrNotHost         = errors.New("only the host may do that")
	ErrAlreadyJoined   = errors.New("already in the room")
	ErrAlreadyAnswered = errors.New("already answered this question")
	ErrHostCannotLeave = errors.New("the host cannot leave the room")
	ErrRoomFinished    = errors.New("room is finished")
	ErrNoMoreQuestions = errors.New("no questions left")
)

// Room statuses
const (
	StatusLobby    = "lobby"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Publisher broadcasts room events; a nil Publisher disables eventing.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}

// Participant is one player's live state within a room.
type Participant struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	Answered bool      `json:"answered"`
	JoinedAt time.Time `json:"joined_at"`
}

// Room is a host-driven live quiz over a fixed question set. All state is in
// memory; a restart drops running rooms.
type Room struct {
	ID           string
	Code         string
	HostID       string
	Questions    []models.Question
	Participants map[string]*Participant
	Current      int
	Status       string
	CreatedAt    time.Time
}

// Hub owns every live room in the process.
type Hub struct {
	mu        sync.Mutex
	rooms     map[string]*Room
	byCode    map[string]string
	publisher Publisher
}

func NewHub(publisher Publisher) *Hub {
	return &Hub{
		rooms:     make(map[string]*Room),
		byCode:    make(map[string]string),
		publisher: publisher,
	}
}

// CreateRoom opens a lobby over the question set and returns the room with
// its join code.
func (h *Hub) CreateRoom(hostID string, questions []models.Question) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := &Room{
		ID:           uuid.NewString(),
		Code:         h.newCodeLocked(),
		HostID:       hostID,
		Questions:    questions,
		Participants: make(map[string]*Participant),
		Current:      -1,
		Status:       StatusLobby,
		CreatedAt:    time.Now(),
	}
	h.rooms[room.ID] = room
	h.byCode[room.Code] = room.ID

	h.publish("live.room.created", map[string]interface{}{
		"room_id": room.ID,
		"host_id": hostID,
	})
	return room
}

// Join adds a participant by join code while the room is in the lobby.
func (h *Hub) Join(code, userID, name string) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomID, ok := h.byCode[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room := h.rooms[roomID]
	if room.Status != StatusLobby {
		return nil, ErrRoomNotJoinable
	}
	if _, ok := room.Participants[userID]; ok {
		return nil, ErrAlreadyJoined
	}

	room.Participants[userID] = &Participant{
		UserID:   userID,
		Name:     name,
		JoinedAt: time.Now(),
	}

	h.publish("live.room.joined", map[string]interface{}{
		"room_id": room.ID,
		"user_id": userID,
		"players": len(room.Participants),
	})
	return room, nil
}

// Leave removes a participant. The host cannot leave; a hostless room would
// be stuck with nobody able to advance it.
func (h *Hub) Leave(roomID, userID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if room.HostID == userID {
		return ErrHostCannotLeave
	}
	if _, ok := room.Participants[userID]; !ok {
		return ErrRoomNotFound
	}
	delete(room.Participants, userID)

	h.publish("live.room.left", map[string]interface{}{
		"room_id": room.ID,
		"user_id": userID,
		"players": len(room.Participants),
	})
	return nil
}

// Start moves the room from lobby to active and serves the first question.
// Only the host may start.
func (h *Hub) Start(roomID, userID string) (*models.Question, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.HostID != userID {
		return nil, ErrNotHost
	}
	if room.Status != StatusLobby {
		return nil, ErrRoomNotJoinable
	}

	room.Status = StatusActive
	h.publish("live.room.started", map[string]interface{}{"room_id": room.ID})
	return h.advanceLocked(room)
}

// NextQuestion advances to the next question, finishing the room when none
// remain. Only the host may advance.
func (h *Hub) NextQuestion(roomID, userID string) (*models.Question, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.HostID != userID {
		return nil, ErrNotHost
	}
	if room.Status != StatusActive {
		return nil, ErrRoomFinished
	}
	return h.advanceLocked(room)
}

// Answer grades a participant's answer to the current question. First answer
// only; score is 10 per correct answer.
func (h *Hub) Answer(roomID, userID, answer string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return false, ErrRoomNotFound
	}
	if room.Status != StatusActive || room.Current < 0 {
		return false, ErrRoomFinished
	}
	p, ok := room.Participants[userID]
	if !ok {
		return false, ErrRoomNotFound
	}
	if p.Answered {
		return false, ErrAlreadyAnswered
	}

	question := room.Questions[room.Current]
	correct := answer == question.CorrectAnswer
	p.Answered = true
	if correct {
		p.Score += 10
	}

	h.publish("live.room.answered", map[string]interface{}{
		"room_id":     room.ID,
		"user_id":     userID,
		"question_id": question.ID,
		"is_correct":  correct,
	})
	return correct, nil
}

// ScoreEntry is one row of a room scoreboard, highest score first.
type ScoreEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Scoreboard returns the room's standings, highest score first.
func (h *Hub) Scoreboard(roomID string) ([]ScoreEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	board := make([]ScoreEntry, 0, len(room.Participants))
	for _, p := range room.Participants {
		board = append(board, ScoreEntry{UserID: p.UserID, Name: p.Name, Score: p.Score})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Score != board[j].Score {
			return board[i].Score > board[j].Score
		}
		return board[i].UserID < board[j].UserID
	})
	return board, nil
}

// Room returns a room by ID.
func (h *Hub) Room(roomID string) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// advanceLocked serves the next question or finishes the room. Callers hold
// the hub lock.
func (h *Hub) advanceLocked(room *Room) (*models.Question, error) {
	room.Current++
	if room.Current >= len(room.Questions) {
		room.Status = StatusFinished
		h.publish("live.room.finished", map[string]interface{}{"room_id": room.ID})
		return nil, ErrNoMoreQuestions
	}
	for _, p := range room.Participants {
		p.Answered = false
	}

	question := room.Questions[room.Current]
	h.publish("live.room.question", map[string]interface{}{
		"room_id":  room.ID,
		"index":    room.Current,
		"question": question.Shaped(),
	})
	return &question, nil
}

// newCodeLocked generates a 6-digit join code unused by any open room.
func (h *Hub) newCodeLocked() string {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			n = big.NewInt(time.Now().UnixNano() % 1000000)
		}
		code := fmt.Sprintf("%06d", n.Int64())
		if _, taken := h.byCode[code]; !taken {
			return code
		}
	}
}

func (h *Hub) publish(eventType string, payload interface{}) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(eventType, payload); err != nil {
		log.Printf("publishing %s failed: %v", eventType, err)
	}
}
