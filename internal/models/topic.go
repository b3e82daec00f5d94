package models

import "time"

// Topic is the hierarchical subject/topic/subtopic/concept key.
// The 4-tuple is unique in the store.
type Topic struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Subject     string    `bson:"subject" json:"subject"`
	Topic       string    `bson:"topic" json:"topic"`
	Subtopic    string    `bson:"subtopic" json:"subtopic"`
	Concept     string    `bson:"concept" json:"concept"`
	Description string    `bson:"description" json:"description,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// TopicKey identifies a topic for find-or-create lookups.
type TopicKey struct {
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
	Concept  string `json:"concept"`
}

// DefaultTopicKey is the placeholder topic used for bank and external
// questions that arrive without an explicit topic.
func DefaultTopicKey(subject string) TopicKey {
	return TopicKey{
		Subject:  subject,
		Topic:    "General",
		Subtopic: "Mixed",
		Concept:  "Various",
	}
}
