package entities

import "math"

type VoteType string

const (
	VoteTypeSimple       VoteType = "simple"
	VoteTypeLockWeighted VoteType = "lock_weighted"
)

type BallotSide string

const (
	SideAye BallotSide = "aye"
	SideNay BallotSide = "nay"
)

// VoteRecord is the proposal state machine: Open until Concluded flips once
// after expiry, never back.
type VoteRecord struct {
	VoteID        uint64
	Creator       string
	VoteType      VoteType
	CreatedHeight uint64
	ExpiryHeight  uint64
	Concluded     bool
}

// AcceptingBallots reports whether ballots may still be cast at the given
// ledger height. Casting closes at the expiry height itself.
func (v VoteRecord) AcceptingBallots(height uint64) bool {
	return height < v.ExpiryHeight
}

// Expired reports whether the vote may be concluded: the height must have
// strictly passed the expiry height.
func (v VoteRecord) Expired(height uint64) bool {
	return height > v.ExpiryHeight
}

// LockInfo records the one-and-only lock ballot a voter placed on a vote.
// Until is the absolute release height: cast height + duration.
type LockInfo struct {
	VoteID   uint64
	Voter    string
	Deposit  uint64
	Duration uint64
	Until    uint64
}

// Weight is the voter's tally contribution: deposit x duration. The second
// return is false when the product does not fit in uint64.
func (l LockInfo) Weight() (uint64, bool) {
	if l.Deposit == 0 || l.Duration == 0 {
		return 0, true
	}
	if l.Deposit > math.MaxUint64/l.Duration {
		return 0, false
	}
	return l.Deposit * l.Duration, true
}

// Releasable reports whether the locked deposit may be withdrawn at the
// given height. Conclusion is checked separately on the VoteRecord.
func (l LockInfo) Releasable(height uint64) bool {
	return height > l.Until
}

// TallyResult is written exactly once when a vote concludes.
type TallyResult struct {
	VoteID    uint64
	AyeWeight uint64
	NayWeight uint64
}
