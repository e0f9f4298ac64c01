// Package game orchestrates the battle lifecycle: preparing questions,
// running the attempt, folding results into progression, and persisting
// every change as it happens.
package game

// State is the orchestrator's position in the play cycle.
type State int

const (
	// StateDashboard means no battle is active.
	StateDashboard State = iota

	// StatePreparing means questions are being fetched.
	StatePreparing

	// StateBattle means an attempt is in progress.
	StateBattle

	// StateResult means the last battle's result is being shown.
	StateResult
)

func (s State) String() string {
	switch s {
	case StateDashboard:
		return "dashboard"
	case StatePreparing:
		return "preparing"
	case StateBattle:
		return "battle"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}
