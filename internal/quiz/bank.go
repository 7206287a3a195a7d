// Package quiz holds the Phase 1 question bank and grades submissions
// against it.
package quiz

import (
	"math/rand/v2"
	"strconv"
)

// PointsPerCorrect 每答对一题得分
const PointsPerCorrect = 5

type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"-"`
}

// Served is the client-facing view of a question.
type Served struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type Bank struct {
	questions []Question
}

func NewBank(questions []Question) *Bank {
	return &Bank{questions: questions}
}

// DefaultBank returns the built-in data-structures bank.
func DefaultBank() *Bank {
	return NewBank(defaultQuestions)
}

func (b *Bank) Size() int {
	return len(b.questions)
}

// MaxPoints is the best possible Phase 1 score.
func (b *Bank) MaxPoints() int {
	return len(b.questions) * PointsPerCorrect
}

// Sample returns n distinct questions in random order. n larger than the
// bank returns the whole bank shuffled.
func (b *Bank) Sample(n int, rng *rand.Rand) []Served {
	idx := rng.Perm(len(b.questions))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Served, 0, n)
	for _, i := range idx[:n] {
		q := b.questions[i]
		out = append(out, Served{ID: q.ID, Question: q.Question, Options: q.Options})
	}
	return out
}

type QuestionResult struct {
	ID        int  `json:"id"`
	Correct   bool `json:"correct"`
	Attempted bool `json:"attempted"`
}

type Grade struct {
	Correct int              `json:"score"`
	Total   int              `json:"total"`
	Points  int              `json:"points"`
	Results []QuestionResult `json:"results"`
}

// Grade walks the full bank matching answers by id. Questions that were
// never served simply have no answer and score nothing; unknown ids are
// ignored.
func (b *Bank) Grade(answers map[string]string) Grade {
	g := Grade{Total: len(b.questions), Results: make([]QuestionResult, 0, len(b.questions))}
	for _, q := range b.questions {
		ans, ok := answers[strconv.Itoa(q.ID)]
		attempted := ok && ans != ""
		correct := attempted && ans == q.Answer
		if correct {
			g.Correct++
		}
		g.Results = append(g.Results, QuestionResult{ID: q.ID, Correct: correct, Attempted: attempted})
	}
	g.Points = g.Correct * PointsPerCorrect
	return g
}
