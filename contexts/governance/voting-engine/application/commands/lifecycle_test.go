package commands

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"govledger/contexts/governance/voting-engine/adapters/hashing"
	"govledger/contexts/governance/voting-engine/adapters/memory"
	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
)

type engineFixture struct {
	store     *memory.Store
	ledger    *memory.Ledger
	heights   *memory.HeightCounter
	lifecycle LifecycleUseCase
	ballots   BallotUseCase
	withdraw  WithdrawalUseCase
}

func newEngine() engineFixture {
	store := memory.NewStore()
	ledger := memory.NewLedger()
	heights := memory.NewHeightCounter(0)
	return engineFixture{
		store:   store,
		ledger:  ledger,
		heights: heights,
		lifecycle: LifecycleUseCase{
			Votes:   store,
			Heights: heights,
			Hasher:  hashing.Keccak{},
			Outbox:  store,
			Clock:   store,
			IDGen:   store,
		},
		ballots: BallotUseCase{
			Votes:      store,
			Ledger:     ledger,
			Heights:    heights,
			Outbox:     store,
			Clock:      store,
			IDGen:      store,
			LockPeriod: 250,
		},
		withdraw: WithdrawalUseCase{
			Votes:   store,
			Ledger:  ledger,
			Heights: heights,
			Outbox:  store,
			Clock:   store,
			IDGen:   store,
		},
	}
}

func (f engineFixture) mustCreate(t *testing.T, creator string, voteType entities.VoteType, duration uint64) entities.VoteRecord {
	t.Helper()
	vote, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  creator,
		VoteType: voteType,
		Duration: duration,
		Payload:  []byte("proposal"),
	})
	if err != nil {
		t.Fatalf("create vote failed: %v", err)
	}
	return vote
}

func TestCreateVoteAssignsSequentialIDs(t *testing.T) {
	f := newEngine()
	f.heights.Set(10)

	first := f.mustCreate(t, "alice", entities.VoteTypeSimple, 5)
	second := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 20)

	if first.VoteID != 1 || second.VoteID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.VoteID, second.VoteID)
	}
	if first.CreatedHeight != 10 || first.ExpiryHeight != 15 {
		t.Fatalf("unexpected heights: created %d expiry %d", first.CreatedHeight, first.ExpiryHeight)
	}
	if second.ExpiryHeight != 30 {
		t.Fatalf("expected expiry 30, got %d", second.ExpiryHeight)
	}

	count, err := f.store.CreatedCount(context.Background(), "alice")
	if err != nil {
		t.Fatalf("created count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected creator count 2, got %d", count)
	}
	listed, err := f.store.ListVotesByCreator(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list by creator failed: %v", err)
	}
	if len(listed) != 2 || listed[0].VoteID != 1 || listed[1].VoteID != 2 {
		t.Fatalf("unexpected creator index: %+v", listed)
	}
}

func TestCreateVoteRecordsPayloadDigest(t *testing.T) {
	f := newEngine()
	payload := []byte("ship the upgrade")
	vote, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  "alice",
		VoteType: entities.VoteTypeSimple,
		Duration: 5,
		Payload:  payload,
	})
	if err != nil {
		t.Fatalf("create vote failed: %v", err)
	}
	digest, err := f.store.VoteDigest(context.Background(), vote.VoteID)
	if err != nil {
		t.Fatalf("vote digest failed: %v", err)
	}
	if digest != (hashing.Keccak{}).Digest(payload) {
		t.Fatalf("digest mismatch: %s", digest)
	}
}

func TestCreateVotePayloadBoundary(t *testing.T) {
	f := newEngine()

	if _, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  "alice",
		VoteType: entities.VoteTypeSimple,
		Duration: 5,
		Payload:  bytes.Repeat([]byte{0xAA}, MaxPayloadBytes),
	}); err != nil {
		t.Fatalf("exactly %d bytes should pass: %v", MaxPayloadBytes, err)
	}

	_, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  "alice",
		VoteType: entities.VoteTypeSimple,
		Duration: 5,
		Payload:  bytes.Repeat([]byte{0xAA}, MaxPayloadBytes+1),
	})
	if !errors.Is(err, domainerrors.ErrPayloadTooLarge) {
		t.Fatalf("expected payload too large, got %v", err)
	}
}

func TestCreateVoteRejectsZeroDuration(t *testing.T) {
	f := newEngine()
	_, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  "alice",
		VoteType: entities.VoteTypeSimple,
		Duration: 0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateVoteCounterOverflow(t *testing.T) {
	f := newEngine()
	f.store.SetVoteCount(math.MaxUint64)
	_, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  "alice",
		VoteType: entities.VoteTypeSimple,
		Duration: 5,
	})
	if !errors.Is(err, domainerrors.ErrVoteCountOverflow) {
		t.Fatalf("expected counter overflow, got %v", err)
	}
}

func TestCreateVoteExpiryOverflow(t *testing.T) {
	f := newEngine()
	f.heights.Set(10)
	_, err := f.lifecycle.CreateVote(context.Background(), CreateVoteCommand{
		Creator:  "alice",
		VoteType: entities.VoteTypeSimple,
		Duration: math.MaxUint64,
	})
	if !errors.Is(err, domainerrors.ErrExpiryOverflow) {
		t.Fatalf("expected expiry overflow, got %v", err)
	}
}

func TestConcludeVoteGuards(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeSimple, 5)

	if err := f.lifecycle.ConcludeVote(context.Background(), 404); !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// Height equal to expiry is not strictly past it.
	f.heights.Set(vote.ExpiryHeight)
	if err := f.lifecycle.ConcludeVote(context.Background(), vote.VoteID); !errors.Is(err, domainerrors.ErrVoteNotExpired) {
		t.Fatalf("expected not expired at expiry height, got %v", err)
	}

	f.heights.Set(vote.ExpiryHeight + 1)
	if err := f.lifecycle.ConcludeVote(context.Background(), vote.VoteID); err != nil {
		t.Fatalf("conclude failed: %v", err)
	}
	if err := f.lifecycle.ConcludeVote(context.Background(), vote.VoteID); !errors.Is(err, domainerrors.ErrVoteAlreadyConcluded) {
		t.Fatalf("expected already concluded, got %v", err)
	}

	stored, err := f.store.GetVote(context.Background(), vote.VoteID)
	if err != nil {
		t.Fatalf("get vote failed: %v", err)
	}
	if !stored.Concluded {
		t.Fatalf("expected concluded flag set")
	}
}

func TestConcludeSimpleVoteTally(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeSimple, 10)

	for _, voter := range []string{"v1", "v2", "v3"} {
		if err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: voter, VoteID: vote.VoteID, Side: entities.SideAye}); err != nil {
			t.Fatalf("aye ballot for %s failed: %v", voter, err)
		}
	}
	for _, voter := range []string{"v4", "v5"} {
		if err := f.ballots.CastBallot(context.Background(), CastBallotCommand{Voter: voter, VoteID: vote.VoteID, Side: entities.SideNay}); err != nil {
			t.Fatalf("nay ballot for %s failed: %v", voter, err)
		}
	}

	f.heights.Set(vote.ExpiryHeight + 1)
	if err := f.lifecycle.ConcludeVote(context.Background(), vote.VoteID); err != nil {
		t.Fatalf("conclude failed: %v", err)
	}

	result, found, err := f.store.GetTallyResult(context.Background(), vote.VoteID)
	if err != nil || !found {
		t.Fatalf("tally result missing: found=%v err=%v", found, err)
	}
	if result.AyeWeight != 3 || result.NayWeight != 2 {
		t.Fatalf("expected 3/2, got %d/%d", result.AyeWeight, result.NayWeight)
	}
}

func TestConcludeLockWeightedVoteTally(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 3)
	f.ledger.SetBalance("voter-a", 100)
	f.ledger.SetBalance("voter-b", 100)

	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "voter-a", VoteID: vote.VoteID, Side: entities.SideAye, Deposit: 10, Duration: 5,
	}); err != nil {
		t.Fatalf("aye lock ballot failed: %v", err)
	}
	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter: "voter-b", VoteID: vote.VoteID, Side: entities.SideNay, Deposit: 4, Duration: 3,
	}); err != nil {
		t.Fatalf("nay lock ballot failed: %v", err)
	}

	f.heights.Set(vote.ExpiryHeight + 1)
	if err := f.lifecycle.ConcludeVote(context.Background(), vote.VoteID); err != nil {
		t.Fatalf("conclude failed: %v", err)
	}

	result, found, err := f.store.GetTallyResult(context.Background(), vote.VoteID)
	if err != nil || !found {
		t.Fatalf("tally result missing: found=%v err=%v", found, err)
	}
	if result.AyeWeight != 50 || result.NayWeight != 12 {
		t.Fatalf("expected 50/12, got %d/%d", result.AyeWeight, result.NayWeight)
	}
}

func TestConcludeLockWeightedWeightOverflow(t *testing.T) {
	f := newEngine()
	vote := f.mustCreate(t, "alice", entities.VoteTypeLockWeighted, 3)
	f.ledger.SetBalance("whale", math.MaxUint64)

	if err := f.ballots.CastLockBallot(context.Background(), CastLockBallotCommand{
		Voter:    "whale",
		VoteID:   vote.VoteID,
		Side:     entities.SideAye,
		Deposit:  1 << 33,
		Duration: 1 << 33,
	}); err != nil {
		t.Fatalf("lock ballot failed: %v", err)
	}

	f.heights.Set(vote.ExpiryHeight + 1)
	err := f.lifecycle.ConcludeVote(context.Background(), vote.VoteID)
	if !errors.Is(err, domainerrors.ErrWeightOverflow) {
		t.Fatalf("expected weight overflow, got %v", err)
	}

	// A failed tally must leave the vote open.
	stored, getErr := f.store.GetVote(context.Background(), vote.VoteID)
	if getErr != nil {
		t.Fatalf("get vote failed: %v", getErr)
	}
	if stored.Concluded {
		t.Fatalf("vote must stay open after tally failure")
	}
}
