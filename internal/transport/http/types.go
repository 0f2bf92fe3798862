package http

import "quiz-event-service/internal/domain"

type validateIDRequest struct {
	UserID string `json:"user_id"`
}

type validateIDResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type heartbeatRequest struct {
	UserID string `json:"user_id"`
}

type heartbeatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type checkAnswerRequest struct {
	QuestionID *int   `json:"question_id"`
	Answer     string `json:"answer"`
}

type checkAnswerResponse struct {
	Correct bool `json:"correct"`
	Score   int  `json:"score"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

type saveProgressRequest struct {
	UserID         string            `json:"user_id"`
	CurrentIndex   int               `json:"current_index"`
	UserAnswers    map[string]string `json:"user_answers"`
	QuestionTimers map[string]int    `json:"question_timers"`
}

type progressResponse struct {
	Progress *domain.Progress `json:"progress"`
}

type resultRequest struct {
	UserID    string            `json:"user_id"`
	Answers   map[string]string `json:"answers"`
	TotalTime int               `json:"total_time"`
}

type resultResponse struct {
	Score    int     `json:"score"`
	MaxScore int     `json:"max_score"`
	Percent  float64 `json:"percent"`
	Grade    string  `json:"grade"`
}

type statsResponse struct {
	TotalUsers     int                    `json:"total_users"`
	AverageScore   float64                `json:"average_score"`
	AveragePercent float64                `json:"average_percent"`
	Results        []domain.AttemptResult `json:"results"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}
