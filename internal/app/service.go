package app

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"quiz-event-service/internal/domain"
	"quiz-event-service/internal/grading"
	"quiz-event-service/internal/question"
)

// ResultsStore persists finalized attempts. Appends are durable before the
// submitting ID is consumed; reads over corrupt data degrade to empty.
type ResultsStore interface {
	Append(ctx context.Context, result domain.AttemptResult) error
	List(ctx context.Context) ([]domain.AttemptResult, error)
	Stats(ctx context.Context) (domain.AggregateStats, error)
	// ExportCSV writes the tabular attempt log to w.
	ExportCSV(ctx context.Context, w io.Writer) error
}

// ProgressStore keeps mid-attempt snapshots. Stale snapshots read as absent.
type ProgressStore interface {
	Save(ctx context.Context, p domain.Progress) error
	Get(ctx context.Context, userID string) (*domain.Progress, error)
}

// QuizService wires the question set, answer matcher, admission control and
// persistence into the quiz use cases.
type QuizService struct {
	questions *question.Repository
	matcher   grading.Matcher
	admission *AdmissionController
	results   ResultsStore
	progress  ProgressStore
	monitor   *Monitor
	now       func() time.Time
}

func NewQuizService(
	questions *question.Repository,
	matcher grading.Matcher,
	admission *AdmissionController,
	results ResultsStore,
	progress ProgressStore,
	monitor *Monitor,
) *QuizService {
	return &QuizService{
		questions: questions,
		matcher:   matcher,
		admission: admission,
		results:   results,
		progress:  progress,
		monitor:   monitor,
		now:       time.Now,
	}
}

// Questions returns the ordered question set with answers stripped.
func (s *QuizService) Questions() []domain.Question {
	return s.questions.Redacted()
}

// CheckAnswer grades a single submission for immediate feedback. It does not
// touch admission state or the results log.
func (s *QuizService) CheckAnswer(questionID int, answer string) (bool, int, error) {
	q, err := s.questions.Get(questionID)
	if err != nil {
		return false, 0, err
	}
	if s.matcher.Matches(answer, q.Answer) {
		return true, q.Score, nil
	}
	return false, 0, nil
}

// Hint returns the hint text for a question.
func (s *QuizService) Hint(questionID int) (string, error) {
	q, err := s.questions.Get(questionID)
	if err != nil {
		return "", err
	}
	return q.Hint, nil
}

// ValidateID runs the admission check for a user ID.
func (s *QuizService) ValidateID(ctx context.Context, userID string) (domain.AdmissionDecision, error) {
	if userID == "" {
		return domain.AdmissionDecision{}, domain.ErrUserIDRequired
	}
	return s.admission.CheckAdmission(ctx, userID)
}

// Heartbeat renews session liveness for a user ID.
func (s *QuizService) Heartbeat(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUserIDRequired
	}
	return s.admission.Heartbeat(ctx, userID)
}

// SaveProgress stores the client's mid-attempt snapshot.
func (s *QuizService) SaveProgress(ctx context.Context, p domain.Progress) error {
	if p.UserID == "" {
		return domain.ErrUserIDRequired
	}
	p.Timestamp = s.now()
	return s.progress.Save(ctx, p)
}

// GetProgress returns the saved snapshot for userID, or nil when none is
// stored or the stored one has gone stale.
func (s *QuizService) GetProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	return s.progress.Get(ctx, userID)
}

// SubmitResult grades the full answer set, persists the attempt, consumes the
// user ID and reports the outcome. Answer keys that do not name a loaded
// question are ignored. The attempt is persisted before the ID is finalized so
// a crash between the two cannot lose a completed attempt.
func (s *QuizService) SubmitResult(ctx context.Context, userID string, answers map[string]string, totalTime int) (domain.AttemptResult, string, error) {
	totalScore := 0
	maxScore := s.questions.MaxScore()
	details := make([]domain.AnswerDetail, 0, len(answers))

	ids := make([]int, 0, len(answers))
	byID := make(map[int]string, len(answers))
	for raw, answer := range answers {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
		byID[id] = answer
	}
	sort.Ints(ids)

	for _, id := range ids {
		q, err := s.questions.Get(id)
		if err != nil {
			continue
		}
		answer := byID[id]
		correct := s.matcher.Matches(answer, q.Answer)
		awarded := 0
		if correct {
			awarded = q.Score
			totalScore += q.Score
		}
		details = append(details, domain.AnswerDetail{
			QuestionID: id,
			Title:      q.Title,
			UserAnswer: answer,
			Correct:    correct,
			Score:      awarded,
		})
	}

	percent := 0.0
	if maxScore > 0 {
		percent = round1(float64(totalScore) / float64(maxScore) * 100)
	}

	result := domain.AttemptResult{
		Timestamp:   s.now(),
		UserID:      userID,
		Score:       totalScore,
		MaxScore:    maxScore,
		Percent:     percent,
		Time:        formatElapsed(totalTime),
		TimeSeconds: totalTime,
		Details:     details,
	}

	if err := s.results.Append(ctx, result); err != nil {
		return domain.AttemptResult{}, "", fmt.Errorf("persist attempt: %w", err)
	}
	if err := s.admission.Finalize(ctx, userID); err != nil {
		return domain.AttemptResult{}, "", fmt.Errorf("finalize id: %w", err)
	}

	if s.monitor != nil {
		if stats, err := s.results.Stats(ctx); err == nil {
			s.monitor.Publish(stats)
		}
	}

	return result, gradeLabel(percent), nil
}

// Results returns all recorded attempts.
func (s *QuizService) Results(ctx context.Context) ([]domain.AttemptResult, error) {
	return s.results.List(ctx)
}

// Stats returns the aggregate view over all recorded attempts.
func (s *QuizService) Stats(ctx context.Context) (domain.AggregateStats, error) {
	return s.results.Stats(ctx)
}

// ExportCSV streams the tabular attempt log.
func (s *QuizService) ExportCSV(ctx context.Context, w io.Writer) error {
	return s.results.ExportCSV(ctx, w)
}

func gradeLabel(percent float64) string {
	switch {
	case percent >= 80:
		return "Отлично!"
	case percent >= 60:
		return "Хорошо!"
	default:
		return "Попробуйте ещё раз!"
	}
}

func formatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
