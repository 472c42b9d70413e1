package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is the synthesized response paired with the question it answers.
type Answer struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnswer creates an answer for the given question.
func NewAnswer(question, text string) *Answer {
	return &Answer{
		ID:        uuid.New(),
		Question:  question,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
