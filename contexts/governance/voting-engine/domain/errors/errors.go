package errors

import "errors"

var (
	ErrPayloadTooLarge      = errors.New("proposal payload exceeds the size cap")
	ErrVoteCountOverflow    = errors.New("vote counter overflow")
	ErrCreatorCountOverflow = errors.New("creator vote counter overflow")
	ErrExpiryOverflow       = errors.New("height overflow computing expiry")
	ErrWeightOverflow       = errors.New("tally weight overflow")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrVoteAlreadyExists    = errors.New("vote already exists at allocated id")
	ErrVoteAlreadyConcluded = errors.New("vote has already concluded")
	ErrVoteNotConcluded     = errors.New("vote has not concluded yet")
	ErrVoteExpired          = errors.New("vote has already expired")
	ErrVoteNotExpired       = errors.New("vote has not expired yet")
	ErrSameSideBallot       = errors.New("already voted that way")
	ErrDuplicateLock        = errors.New("lock ballot already cast for this vote")
	ErrLockNotFound         = errors.New("no lock recorded for this vote and voter")
	ErrLockNotReleasable    = errors.New("lock release height has not passed")
	ErrSelfVoteForbidden    = errors.New("creator cannot vote on own proposal")
	ErrVoteTypeMismatch     = errors.New("operation does not match the vote type")
	ErrInsufficientBalance  = errors.New("deposit must stay below the free balance")
	ErrLockTooShort         = errors.New("lock duration must cover the vote lifetime")
	ErrUnsupportedVoteType  = errors.New("unsupported vote type")
	ErrInvalidBallotSide    = errors.New("invalid ballot side")
	ErrInvalidVoteInput     = errors.New("invalid vote input")
	ErrTallyNotFound        = errors.New("tally result not found")
)
