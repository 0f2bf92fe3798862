package question

import (
	"os"
	"path/filepath"
	"testing"

	"quiz-event-service/internal/domain"
)

const sampleSource = `
title: Столица
text: Назовите столицу Франции
answer: Париж
score: 2
time_limit: 30
hint: Город на Сене
---
text: Сколько будет 2+2?
answer: 4
---
text: Вопрос без ответа
score: 1
---
title: Последний
text: Назовите число Пи с двумя знаками
answer: 3,14 или 3.14
score: 3
`

func TestParseLoadsOrderedQuestions(t *testing.T) {
	repo := Parse(sampleSource)

	if repo.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", repo.Len())
	}
	if repo.SkippedBlocks() != 1 {
		t.Fatalf("expected 1 skipped block, got %d", repo.SkippedBlocks())
	}

	first, err := repo.Get(0)
	if err != nil {
		t.Fatalf("get 0: %v", err)
	}
	if first.Title != "Столица" || first.Score != 2 || first.TimeLimit != 30 {
		t.Fatalf("unexpected first question: %+v", first)
	}

	second, err := repo.Get(1)
	if err != nil {
		t.Fatalf("get 1: %v", err)
	}
	if second.Score != 1 || second.TimeLimit != 60 {
		t.Fatalf("expected defaults for second question, got %+v", second)
	}
	if second.Title != "Вопрос 2" {
		t.Fatalf("expected auto-numbered title, got %q", second.Title)
	}
	if second.Hint != "Подсказка недоступна." {
		t.Fatalf("expected placeholder hint, got %q", second.Hint)
	}
}

// IDs track block positions, so dropping a malformed block must not
// renumber the questions that follow it.
func TestParsePreservesIDsAcrossSkippedBlocks(t *testing.T) {
	repo := Parse(sampleSource)

	if _, err := repo.Get(2); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected block 2 to be skipped, got err=%v", err)
	}
	last, err := repo.Get(3)
	if err != nil {
		t.Fatalf("get 3: %v", err)
	}
	if last.Title != "Последний" || last.Score != 3 {
		t.Fatalf("unexpected last question: %+v", last)
	}

	ids := make([]int, 0, repo.Len())
	for _, q := range repo.All() {
		ids = append(ids, q.ID)
	}
	want := []int{0, 1, 3}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, ids)
		}
	}
}

func TestParseSkipsNonIntegerScore(t *testing.T) {
	repo := Parse("text: q\nanswer: a\nscore: many\n---\ntext: q2\nanswer: a2")

	if repo.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", repo.Len())
	}
	if repo.SkippedBlocks() != 1 {
		t.Fatalf("expected 1 skipped block, got %d", repo.SkippedBlocks())
	}
	if _, err := repo.Get(0); err == nil {
		t.Fatalf("expected block 0 to be dropped")
	}
}

func TestParseMultilineValuesAndLeadingJunk(t *testing.T) {
	src := "ignored preamble line\ntext: first line\nsecond line\nanswer: a"
	repo := Parse(src)

	q, err := repo.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.Text != "first line\nsecond line" {
		t.Fatalf("expected multi-line text preserved, got %q", q.Text)
	}
}

func TestParseFieldPrefixCaseInsensitive(t *testing.T) {
	repo := Parse("TEXT: q\nAnswer: a\nSCORE: 5")

	q, err := repo.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.Score != 5 || q.Answer != "a" {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestRedactedStripsAnswers(t *testing.T) {
	repo := Parse(sampleSource)

	for _, q := range repo.Redacted() {
		if q.Answer != "" {
			t.Fatalf("redacted question %d still carries an answer", q.ID)
		}
	}
	// Redaction must not mutate the repository.
	q, _ := repo.Get(0)
	if q.Answer == "" {
		t.Fatalf("repository lost the answer after redaction")
	}
}

func TestMaxScoreSumsLoadedQuestions(t *testing.T) {
	repo := Parse(sampleSource)
	if got := repo.MaxScore(); got != 6 {
		t.Fatalf("expected max score 6, got %d", got)
	}
}

func TestLoadFileMissingYieldsEmptyRepository(t *testing.T) {
	repo, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if repo.Len() != 0 || repo.MaxScore() != 0 {
		t.Fatalf("expected empty repository, got %d questions", repo.Len())
	}
}

func TestLoadFileReadsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(sampleSource), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	repo, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", repo.Len())
	}
}
