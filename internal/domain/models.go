package domain

import "time"

// Question is a single quiz item loaded from the question source.
// The collection is ordered; ID is the block position in the source,
// including positions occupied by skipped malformed blocks.
type Question struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Answer    string `json:"answer,omitempty"`
	Score     int    `json:"score"`
	TimeLimit int    `json:"time_limit"`
	Hint      string `json:"hint"`
}

// Redacted returns a client-safe copy with the answer stripped.
func (q Question) Redacted() Question {
	q.Answer = ""
	return q
}

// AdmissionDecision is the outcome of an admission check.
type AdmissionDecision struct {
	Granted bool
	Reason  DenialReason
	Message string
}

// DenialReason classifies why admission was refused.
type DenialReason string

const (
	DenialNone      DenialReason = ""
	DenialUnknown   DenialReason = "unknown_id"
	DenialExhausted DenialReason = "id_exhausted"
	DenialInUse     DenialReason = "id_in_use"
)

// AnswerDetail records the outcome for one submitted answer within an attempt.
type AnswerDetail struct {
	QuestionID int    `json:"question_id"`
	Title      string `json:"title"`
	UserAnswer string `json:"user_answer"`
	Correct    bool   `json:"correct"`
	Score      int    `json:"score"`
}

// AttemptResult is the finalized record of one completed attempt.
// Created exactly once per completion and immutable thereafter.
type AttemptResult struct {
	Timestamp   time.Time      `json:"timestamp"`
	UserID      string         `json:"user_id"`
	Score       int            `json:"score"`
	MaxScore    int            `json:"max_score"`
	Percent     float64        `json:"percent"`
	Time        string         `json:"time"`
	TimeSeconds int            `json:"time_seconds"`
	Details     []AnswerDetail `json:"details"`
}

// AggregateStats summarizes all finalized attempts.
type AggregateStats struct {
	TotalUsers     int     `json:"total_users"`
	AverageScore   float64 `json:"average_score"`
	AveragePercent float64 `json:"average_percent"`
}

// Progress is a mid-attempt snapshot a client can save and restore.
type Progress struct {
	UserID         string            `json:"user_id"`
	CurrentIndex   int               `json:"current_index"`
	UserAnswers    map[string]string `json:"user_answers"`
	QuestionTimers map[string]int    `json:"question_timers"`
	Timestamp      time.Time         `json:"timestamp"`
}
