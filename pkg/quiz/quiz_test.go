package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()
	require.Equal(t, 3, b.Len())
	assert.Equal(t, 350, b.MaxScore())

	q, ok := b.At(1)
	require.True(t, ok)
	assert.Equal(t, "Which gas is primarily responsible for global warming?", q.Text)
	assert.Equal(t, "Carbon Dioxide", q.Options[q.Correct])

	_, ok = b.At(3)
	assert.False(t, ok)
	_, ok = b.At(-1)
	assert.False(t, ok)
}

func TestParseBank_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "questions: [::"},
		{"empty", "questions: []"},
		{"three options", `questions:
  - text: "q"
    options: ["a", "b", "c"]
    correct: 0
    points: 10`},
		{"correct out of range", `questions:
  - text: "q"
    options: ["a", "b", "c", "d"]
    correct: 4
    points: 10`},
		{"missing text", `questions:
  - options: ["a", "b", "c", "d"]
    correct: 0
    points: 10`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBank([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSession_AllCorrect(t *testing.T) {
	b := DefaultBank()
	s := NewSession(b)
	s.Open()

	var steps []Step
	for i := 0; i < b.Len(); i++ {
		q, ok := s.Current()
		require.True(t, ok)
		out, ok := s.Answer(q.Correct)
		require.True(t, ok)
		assert.True(t, out.Correct)
		assert.Equal(t, q.Points, out.Points)
		assert.Equal(t, i == b.Len()-1, out.Last)
		steps = append(steps, s.Advance())
	}

	assert.Equal(t, []Step{StepNext, StepNext, StepComplete}, steps)
	assert.Equal(t, 350, s.Score())
	assert.Equal(t, StateClosed, s.State())
}

func TestSession_AllIncorrect(t *testing.T) {
	s := NewSession(DefaultBank())
	s.Open()
	for i := 0; i < s.Total(); i++ {
		q, _ := s.Current()
		out, ok := s.Answer((q.Correct + 1) % OptionCount)
		require.True(t, ok)
		assert.False(t, out.Correct)
		assert.Zero(t, out.Points)
		s.Advance()
	}
	assert.Zero(t, s.Score())
	assert.False(t, s.Active())
}

func TestSession_NoOpInteractions(t *testing.T) {
	s := NewSession(DefaultBank())

	_, ok := s.Answer(0)
	assert.False(t, ok, "closed session ignores answers")
	assert.Equal(t, StepNone, s.Advance())

	s.Open()
	_, ok = s.Answer(7)
	assert.False(t, ok, "out of range option")
	_, ok = s.Answer(-1)
	assert.False(t, ok)

	_, ok = s.Answer(0)
	require.True(t, ok)
	_, ok = s.Answer(0)
	assert.False(t, ok, "second answer before the transition")
	assert.Equal(t, 100, s.Score())

	assert.Equal(t, StepNext, s.Advance())
	assert.Equal(t, StepNone, s.Advance(), "transition applies once")
	assert.Equal(t, 1, s.Index())
}

func TestSession_DismissDiscardsScore(t *testing.T) {
	s := NewSession(DefaultBank())
	s.Open()
	s.Answer(0)
	s.Dismiss()

	assert.Equal(t, StateClosed, s.State())
	assert.Zero(t, s.Score())
	assert.False(t, s.Pending())
	assert.Equal(t, StepNone, s.Advance(), "pending transition is dropped")
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_ReopenRestarts(t *testing.T) {
	s := NewSession(DefaultBank())
	s.Open()
	s.Answer(0)
	s.Advance()
	s.Open()
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Score())
	assert.False(t, s.Pending())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "active", StateActive.String())
}
