package quiz

// Reward policy. Flat constants rather than difficulty-derived values;
// tune here if the economy ever changes.
const (
	XPPerCorrect      = 100
	XPCompletionBonus = 50
)

// Award is the experience yield of one completed battle.
type Award struct {
	CorrectCount int
	XPGained     int
}

// BattleResult is the immutable snapshot of a completed attempt, consumed
// by the progression engine and the result screen.
type BattleResult struct {
	Questions []Question
	Answers   []int
	Award     Award
}

// ComputeAward scores a finished battle. Pure and deterministic: answers
// beyond the question list are ignored, missing answers count as wrong.
func ComputeAward(questions []Question, answers []int) Award {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			correct++
		}
	}
	return Award{
		CorrectCount: correct,
		XPGained:     correct*XPPerCorrect + XPCompletionBonus,
	}
}
