package question

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"quiz-event-service/internal/domain"
)

// BlockDelimiter separates question blocks in the source file.
const BlockDelimiter = "---"

var fieldKeys = []string{"title", "text", "answer", "score", "time_limit", "hint"}

// Repository holds the ordered, immutable question set loaded at startup.
// IDs are block positions in the source, including skipped blocks, so an
// externally stored answer sheet keyed by position stays aligned even when
// malformed blocks are dropped.
type Repository struct {
	byID    map[int]domain.Question
	ordered []domain.Question
	skipped int
}

// LoadFile reads the question source from disk. A missing file yields an
// empty repository, not an error.
func LoadFile(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(""), nil
		}
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse segments the source into blocks and extracts question records.
// Blocks missing non-empty text or answer, or with non-integer score or
// time_limit, are skipped silently; their positions still consume IDs.
func Parse(source string) *Repository {
	repo := &Repository{byID: make(map[int]domain.Question)}

	source = strings.TrimSpace(source)
	if source == "" {
		return repo
	}

	blockIndex := 0
	for _, block := range strings.Split(source, BlockDelimiter) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		i := blockIndex
		blockIndex++

		q, ok := parseBlock(block, i)
		if !ok {
			repo.skipped++
			continue
		}
		repo.byID[q.ID] = q
		repo.ordered = append(repo.ordered, q)
	}

	sort.Slice(repo.ordered, func(a, b int) bool { return repo.ordered[a].ID < repo.ordered[b].ID })
	return repo
}

func parseBlock(block string, index int) (domain.Question, bool) {
	fields := make(map[string]string)
	currentKey := ""
	var currentValue []string

	flush := func() {
		if currentKey != "" {
			fields[currentKey] = strings.TrimSpace(strings.Join(currentValue, "\n"))
			currentValue = nil
		}
	}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if key, rest, ok := matchFieldPrefix(line); ok {
			flush()
			currentKey = key
			currentValue = []string{strings.TrimSpace(rest)}
			continue
		}
		// Lines before any recognized prefix are discarded.
		if currentKey != "" {
			currentValue = append(currentValue, line)
		}
	}
	flush()

	q := domain.Question{
		ID:        index,
		Title:     fields["title"],
		Text:      fields["text"],
		Answer:    fields["answer"],
		Hint:      fields["hint"],
		Score:     1,
		TimeLimit: 60,
	}
	if _, ok := fields["title"]; !ok {
		q.Title = fmt.Sprintf("Вопрос %d", index+1)
	}
	if _, ok := fields["hint"]; !ok {
		q.Hint = "Подсказка недоступна."
	}
	if q.Text == "" || q.Answer == "" {
		return domain.Question{}, false
	}

	if raw, ok := fields["score"]; ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Question{}, false
		}
		q.Score = v
	}
	if raw, ok := fields["time_limit"]; ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Question{}, false
		}
		q.TimeLimit = v
	}
	return q, true
}

// matchFieldPrefix reports whether the line starts a recognized field,
// returning the key and the remainder after the colon.
func matchFieldPrefix(line string) (key, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	for _, k := range fieldKeys {
		if strings.HasPrefix(lower, k+":") {
			return k, trimmed[len(k)+1:], true
		}
	}
	return "", "", false
}

// Get returns the question with the given ID.
func (r *Repository) Get(id int) (domain.Question, error) {
	q, ok := r.byID[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

// All returns the loaded questions in source order.
func (r *Repository) All() []domain.Question {
	out := make([]domain.Question, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Redacted returns all questions with answers stripped, safe for clients.
func (r *Repository) Redacted() []domain.Question {
	out := make([]domain.Question, 0, len(r.ordered))
	for _, q := range r.ordered {
		out = append(out, q.Redacted())
	}
	return out
}

// MaxScore is the sum of every loaded question's score.
func (r *Repository) MaxScore() int {
	total := 0
	for _, q := range r.ordered {
		total += q.Score
	}
	return total
}

// Len reports the number of loaded questions.
func (r *Repository) Len() int { return len(r.ordered) }

// SkippedBlocks reports how many malformed blocks were dropped at load time.
func (r *Repository) SkippedBlocks() int { return r.skipped }
