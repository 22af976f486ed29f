package commands

import (
	"context"
	"errors"
	"testing"

	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
)

func (f engineFixture) ballotSets(t *testing.T, voteID uint64) ([]string, []string) {
	t.Helper()
	aye, err := f.store.VotedAccounts(context.Background(), voteID, entities.SideAye)
	if err != nil {
		t.Fatalf("aye set failed: %v", err)
	}
	nay, err := f.store.VotedAccounts(context.Background(), voteID, entities.SideNay)
	if err != nil {
		t.Fatalf("nay set failed: %v", err)
	}
	return aye, nay
}

func TestCastBallotSameSideRejected(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeSimple, 10)

	if err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye}); err != nil {
		t.Fatalf("first ballot failed: %v", err)
	}
	err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye})
	if !errors.Is(err, domainerrors.ErrSameSideBallot) {
		t.Fatalf("expected same side rejection, got %v", err)
	}

	aye, nay := f.ballotSets(t, vote.VoteID)
	if len(aye) != 1 || aye[0] != "bob" || len(nay) != 0 {
		t.Fatalf("sets changed on rejection: aye=%v nay=%v", aye, nay)
	}
}

func TestCastBallotSideSwitch(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeSimple, 10)

	if err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye}); err != nil {
		t.Fatalf("aye ballot failed: %v", err)
	}
	if err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "carol", VoteID: vote.VoteID, Side: entities.SideAye}); err != nil {
		t.Fatalf("carol ballot failed: %v", err)
	}
	if err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: vote.VoteID, Side: entities.SideNay}); err != nil {
		t.Fatalf("side switch failed: %v", err)
	}

	aye, nay := f.ballotSets(t, vote.VoteID)
	if len(aye) != 1 || aye[0] != "carol" {
		t.Fatalf("expected only carol in aye, got %v", aye)
	}
	if len(nay) != 1 || nay[0] != "bob" {
		t.Fatalf("expected only bob in nay, got %v", nay)
	}
}

func TestCastBallotCreatorForbidden(t *testing.T) {
	f := newEngine()
	simple := f.mustCreate(t, "alice", entities.VoteTypeSimple, 10)
	weighted := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("alice", 100)

	err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "alice", VoteID: simple.VoteID, Side: entities.SideAye})
	if !errors.Is(err, domainerrors.ErrSelfVoteForbidden) {
		t.Fatalf("expected self vote rejection, got %v", err)
	}
	err = f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "alice", VoteID: weighted.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 20,
	})
	if !errors.Is(err, domainerrors.ErrSelfVoteForbidden) {
		t.Fatalf("expected self lock vote rejection, got %v", err)
	}
}

func TestCastBallotAfterExpiryRejected(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeSimple, 10)

	// Casting window closes at the expiry height itself.
	f.heights.Set(vote.ExpiryHeight)
	err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye})
	if !errors.Is(err, domainerrors.ErrVoteExpired) {
		t.Fatalf("expected expired rejection, got %v", err)
	}
}

func TestCastBallotValidation(t *testing.T) {
	f := newEngine()
	simple := f.mustCreate(t, "alice", entities.VoteTypeSimple, 10)
	weighted := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("bob", 100)

	err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: simple.VoteID, Side: "abstain"})
	if !errors.Is(err, domainerrors.ErrInvalidBallotSide) {
		t.Fatalf("expected invalid side, got %v", err)
	}
	err = f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: 404, Side: entities.SideAye})
	if !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	err = f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: "bob", VoteID: weighted.VoteID, Side: entities.SideAye})
	if !errors.Is(err, domainerrors.ErrVoteTypeMismatch) {
		t.Fatalf("expected type mismatch for simple cast on weighted vote, got %v", err)
	}
	err = f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: simple.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 20,
	})
	if !errors.Is(err, domainerrors.ErrVoteTypeMismatch) {
		t.Fatalf("expected type mismatch for lock cast on simple vote, got %v", err)
	}
}

func TestCastLockBallotPlacesLock(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("bob", 100)

	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 40, Duration: 12,
	}); err != nil {
		t.Fatalf("lock ballot failed: %v", err)
	}

	lock, found, err := f.store.GetLock(context.Background(), vote.VoteID, "bob")
	if err != nil || !found {
		t.Fatalf("lock record missing: found=%v err=%v", found, err)
	}
	if lock.Deposit != 40 || lock.Duration != 12 || lock.Until != 12 {
		t.Fatalf("unexpected lock record: %+v", lock)
	}
	if !f.ledger.HasLock(LockIdentifier(vote.VoteID), "bob") {
		t.Fatalf("ledger lock not placed")
	}
	free, err := f.ledger.FreeBalance(context.Background(), "bob")
	if err != nil {
		t.Fatalf("free balance failed: %v", err)
	}
	if free != 60 {
		t.Fatalf("expected free balance 60, got %d", free)
	}
	aye, _ := f.ballotSets(t, vote.VoteID)
	if len(aye) != 1 || aye[0] != "bob" {
		t.Fatalf("voter missing from aye set: %v", aye)
	}
}

func TestCastLockBallotDuplicateRejected(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("bob", 100)

	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 20,
	}); err != nil {
		t.Fatalf("first lock ballot failed: %v", err)
	}
	// Repeats are rejected outright, even on the opposite side.
	err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideNay, Deposit: 5, Duration: 20,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateLock) {
		t.Fatalf("expected duplicate lock rejection, got %v", err)
	}
}

func TestCastLockBallotInsufficientBalance(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("bob", 50)

	// Deposit equal to the free balance is not strictly below it.
	err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 50, Duration: 20,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if _, found, _ := f.store.GetLock(context.Background(), vote.VoteID, "bob"); found {
		t.Fatalf("lock record must not exist after rejection")
	}
	if f.ledger.HasLock(LockIdentifier(vote.VoteID), "bob") {
		t.Fatalf("ledger lock must not exist after rejection")
	}
}

func TestCastLockBallotTooShort(t *testing.T) {
	f := newEngine()
	f.heights.Set(5)
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("bob", 100)

	err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 9,
	})
	if !errors.Is(err, domainerrors.ErrLockTooShort) {
		t.Fatalf("expected lock too short, got %v", err)
	}

	// A lock landing exactly on the expiry height is long enough.
	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 10,
	}); err != nil {
		t.Fatalf("boundary duration rejected: %v", err)
	}
}

func TestCastLockBallotRejectionLeavesSetsUntouched(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 10)
	f.ledger.SetBalance("bob", 100)

	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 20,
	}); err != nil {
		t.Fatalf("lock ballot failed: %v", err)
	}
	err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "bob", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 20,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateLock) {
		t.Fatalf("expected duplicate lock rejection, got %v", err)
	}
	aye, nay := f.ballotSets(t, vote.VoteID)
	if len(aye) != 1 || len(nay) != 0 {
		t.Fatalf("sets changed on rejection: aye=%v nay=%v", aye, nay)
	}
}
