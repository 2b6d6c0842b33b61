package quiz

// State is the lifecycle state of a quiz session.
type State int

const (
	StateClosed State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	default:
		return "closed"
	}
}

// Outcome describes one answered question. Points is zero for an incorrect
// answer. Last is true when the answer finishes the quiz once the feedback
// delay elapses.
type Outcome struct {
	Index    int
	Question Question
	Option   int
	Correct  bool
	Points   int
	Last     bool
}

// Step is what a pending transition did when it was applied.
type Step int

const (
	StepNone Step = iota
	StepNext
	StepComplete
)

// Session walks an ordered question bank. Answers are accepted one at a time:
// after Answer the session waits for Advance before taking the next answer.
type Session struct {
	bank    *Bank
	state   State
	index   int
	score   int
	pending bool
}

// NewSession creates a closed session over bank.
func NewSession(bank *Bank) *Session {
	return &Session{bank: bank}
}

// Open starts the quiz from the first question with a zero score.
func (s *Session) Open() {
	s.state = StateActive
	s.index = 0
	s.score = 0
	s.pending = false
}

// Answer records option for the current question. It is a no-op (ok=false)
// when the session is closed, a previous answer is awaiting Advance, or the
// option is out of range.
func (s *Session) Answer(option int) (out Outcome, ok bool) {
	if s.state != StateActive || s.pending {
		return Outcome{}, false
	}
	q, found := s.bank.At(s.index)
	if !found || option < 0 || option >= len(q.Options) {
		return Outcome{}, false
	}

	out = Outcome{
		Index:    s.index,
		Question: q,
		Option:   option,
		Correct:  q.IsCorrect(option),
		Last:     s.index == s.bank.Len()-1,
	}
	if out.Correct {
		out.Points = q.Points
		s.score += q.Points
	}
	s.pending = true
	return out, true
}

// Advance applies the transition queued by the last Answer: move to the next
// question, or close the session after the last one.
func (s *Session) Advance() Step {
	if s.state != StateActive || !s.pending {
		return StepNone
	}
	s.pending = false
	if s.index < s.bank.Len()-1 {
		s.index++
		return StepNext
	}
	s.state = StateClosed
	return StepComplete
}

// Dismiss closes the session and discards its score.
func (s *Session) Dismiss() {
	s.state = StateClosed
	s.index = 0
	s.score = 0
	s.pending = false
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Active reports whether the quiz is open.
func (s *Session) Active() bool { return s.state == StateActive }

// Index returns the current question index.
func (s *Session) Index() int { return s.index }

// Score returns the running score. After completion it holds the final score
// until the session is opened or dismissed again.
func (s *Session) Score() int { return s.score }

// Pending reports whether an answer is waiting for its transition.
func (s *Session) Pending() bool { return s.pending }

// Current returns the question being asked. ok is false when closed.
func (s *Session) Current() (Question, bool) {
	if s.state != StateActive {
		return Question{}, false
	}
	return s.bank.At(s.index)
}

// Total returns the number of questions in the session.
func (s *Session) Total() int { return s.bank.Len() }
