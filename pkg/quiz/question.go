package quiz

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

//go:embed questions.yaml
var defaultBank []byte

// Question is a single multiple-choice question.
type Question struct {
	Text    string   `yaml:"text" json:"text"`
	Options []string `yaml:"options" json:"options"`
	Correct int      `yaml:"correct" json:"correct"`
	Points  int      `yaml:"points" json:"points"`
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.Correct
}

// Validate checks the question is answerable.
func (q Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %q has %d options, want %d", q.Text, len(q.Options), OptionCount)
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("question %q has correct index %d out of range", q.Text, q.Correct)
	}
	if q.Points < 0 {
		return fmt.Errorf("question %q has negative points", q.Text)
	}
	return nil
}

// Bank is an ordered, read-only list of questions.
type Bank struct {
	questions []Question
}

// ParseBank decodes a YAML question bank.
func ParseBank(data []byte) (*Bank, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, errors.New("question bank is empty")
	}
	for i, q := range doc.Questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return &Bank{questions: doc.Questions}, nil
}

// DefaultBank returns the built-in environmental quiz.
func DefaultBank() *Bank {
	b, err := ParseBank(defaultBank)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank is invalid: %v", err))
	}
	return b
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns question i. ok is false when i is out of range.
func (b *Bank) At(i int) (q Question, ok bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	q = b.questions[i]
	q.Options = append([]string(nil), q.Options...)
	return q, true
}

// MaxScore is the score for answering every question correctly.
func (b *Bank) MaxScore() int {
	total := 0
	for _, q := range b.questions {
		total += q.Points
	}
	return total
}
