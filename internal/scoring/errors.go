package scoring

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the engine wraps exactly one of these.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrIllegalOperation    = errors.New("illegal operation")
	ErrRosterInconsistency = errors.New("roster inconsistency")
)

var (
	ErrRunsOutOfRange      = fmt.Errorf("%w: runs must be between 0 and 6", ErrInvalidInput)
	ErrUnknownKind         = fmt.Errorf("%w: unknown delivery kind", ErrInvalidInput)
	ErrUnknownDismissal    = fmt.Errorf("%w: unknown dismissal type", ErrInvalidInput)
	ErrMissingDismissal    = fmt.Errorf("%w: wicket requires a dismissal", ErrInvalidInput)
	ErrUnexpectedDismissal = fmt.Errorf("%w: dismissal given without a wicket", ErrInvalidInput)
	ErrMissingFielder      = fmt.Errorf("%w: caught requires a fielder", ErrInvalidInput)
	ErrMissingRunOutEnd    = fmt.Errorf("%w: run out requires the dismissed end", ErrInvalidInput)
	ErrNonStrikerDismissal = fmt.Errorf("%w: only a run out can dismiss the non-striker", ErrInvalidInput)
	ErrDismissalNotAllowed = fmt.Errorf("%w: dismissal not possible off this delivery", ErrInvalidInput)
	ErrRetireViaDelivery   = fmt.Errorf("%w: retirements are recorded with RetireBatsman", ErrInvalidInput)
	ErrSameBatter          = fmt.Errorf("%w: striker and non-striker must be different players", ErrInvalidInput)
	ErrMissingPlayer       = fmt.Errorf("%w: player name is required", ErrInvalidInput)
	ErrInvalidOvers        = fmt.Errorf("%w: total overs must be positive", ErrInvalidInput)
	ErrInvalidTeams        = fmt.Errorf("%w: a match needs two distinct teams", ErrInvalidInput)
	ErrInvalidToss         = fmt.Errorf("%w: toss winner must be one of the two teams", ErrInvalidInput)
	ErrUnknownCommand      = fmt.Errorf("%w: unknown command", ErrInvalidInput)

	ErrMatchNotStarted     = fmt.Errorf("%w: match has not started", ErrIllegalOperation)
	ErrMatchAlreadyStarted = fmt.Errorf("%w: match has already started", ErrIllegalOperation)
	ErrMatchCompleted      = fmt.Errorf("%w: match is completed", ErrIllegalOperation)
	ErrDecisionPending     = fmt.Errorf("%w: a decision is pending", ErrIllegalOperation)
	ErrUnexpectedDecision  = fmt.Errorf("%w: no such decision is pending", ErrIllegalOperation)
	ErrNothingToUndo       = fmt.Errorf("%w: nothing to undo", ErrIllegalOperation)
	ErrUndoBlocked         = fmt.Errorf("%w: resolve the pending decision before undoing", ErrIllegalOperation)
	ErrConsecutiveOvers    = fmt.Errorf("%w: a bowler cannot bowl consecutive overs", ErrIllegalOperation)
	ErrInvariantViolated   = fmt.Errorf("%w: resulting state is inconsistent", ErrIllegalOperation)

	ErrPlayerNotInRoster = fmt.Errorf("%w: player is not in the team roster", ErrRosterInconsistency)
	ErrPlayerAlreadyOut  = fmt.Errorf("%w: player is already out", ErrRosterInconsistency)
	ErrPlayerAtCrease    = fmt.Errorf("%w: player is already batting", ErrRosterInconsistency)
	ErrPlayerNotAtCrease = fmt.Errorf("%w: player is not batting", ErrRosterInconsistency)
)
