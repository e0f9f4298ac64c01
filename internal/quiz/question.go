// Package quiz holds the battle core: the question type, the attempt
// state machine that sequences one battle, and the award calculator.
package quiz

// Question is a single multiple-choice question as delivered by the
// question provider. The quiz core treats it as immutable input and
// trusts CorrectIndex.
type Question struct {
	ID           string
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
	Topic        string
}

// valid reports whether the question can be answered at all: at least
// one option, with CorrectIndex pointing inside Options.
func (q Question) valid() bool {
	return len(q.Options) > 0 && q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}
