package unit

import (
	"context"
	"errors"
	"testing"

	votingengine "govledger/contexts/governance/voting-engine"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	httptransport "govledger/contexts/governance/voting-engine/transport/http"
)

func TestGovernanceSimpleVoteLifecycle(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil)
	ctx := context.Background()

	vote, err := module.Handler.CreateVoteHandler(ctx, "alice", httptransport.CreateVoteRequest{
		VoteType: "simple",
		Duration: 10,
		Payload:  "raise the quorum",
	})
	if err != nil {
		t.Fatalf("create vote failed: %v", err)
	}
	if vote.VoteID != 1 {
		t.Fatalf("expected vote id 1, got %d", vote.VoteID)
	}

	for _, voter := range []string{"v1", "v2", "v3"} {
		if err := module.Handler.CastBallotHandler(ctx, voter, vote.VoteID, httptransport.CastBallotRequest{Side: "aye"}); err != nil {
			t.Fatalf("aye ballot for %s failed: %v", voter, err)
		}
	}
	for _, voter := range []string{"v4", "v5"} {
		if err := module.Handler.CastBallotHandler(ctx, voter, vote.VoteID, httptransport.CastBallotRequest{Side: "nay"}); err != nil {
			t.Fatalf("nay ballot for %s failed: %v", voter, err)
		}
	}

	if err := module.Handler.ConcludeVoteHandler(ctx, vote.VoteID); !errors.Is(err, domainerrors.ErrVoteNotExpired) {
		t.Fatalf("expected not expired before expiry, got %v", err)
	}

	module.Heights.Set(11)
	if err := module.Handler.ConcludeVoteHandler(ctx, vote.VoteID); err != nil {
		t.Fatalf("conclude failed: %v", err)
	}

	tally, err := module.Handler.TallyHandler(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("tally query failed: %v", err)
	}
	if tally.AyeWeight != 3 || tally.NayWeight != 2 {
		t.Fatalf("expected 3/2, got %d/%d", tally.AyeWeight, tally.NayWeight)
	}

	sets, err := module.Handler.BallotSetsHandler(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("ballot sets query failed: %v", err)
	}
	if len(sets.Aye) != 3 || len(sets.Nay) != 2 {
		t.Fatalf("unexpected set sizes: %d/%d", len(sets.Aye), len(sets.Nay))
	}
}

func TestGovernanceLockWeightedLifecycle(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil)
	ctx := context.Background()
	module.Ledger.SetBalance("voter-a", 100)
	module.Ledger.SetBalance("voter-b", 100)

	vote, err := module.Handler.CreateVoteHandler(ctx, "alice", httptransport.CreateVoteRequest{
		VoteType: "lock_weighted",
		Duration: 3,
		Payload:  "fund the treasury",
	})
	if err != nil {
		t.Fatalf("create vote failed: %v", err)
	}

	if err := module.Handler.CastLockBallotHandler(ctx, "voter-a", vote.VoteID, httptransport.CastLockBallotRequest{
		Side: "aye", Deposit: 10, Duration: 5,
	}); err != nil {
		t.Fatalf("aye lock ballot failed: %v", err)
	}
	if err := module.Handler.CastLockBallotHandler(ctx, "voter-b", vote.VoteID, httptransport.CastLockBallotRequest{
		Side: "nay", Deposit: 4, Duration: 3,
	}); err != nil {
		t.Fatalf("nay lock ballot failed: %v", err)
	}

	module.Heights.Set(4)
	if err := module.Handler.ConcludeVoteHandler(ctx, vote.VoteID); err != nil {
		t.Fatalf("conclude failed: %v", err)
	}

	tally, err := module.Handler.TallyHandler(ctx, vote.VoteID)
	if err != nil {
		t.Fatalf("tally query failed: %v", err)
	}
	if tally.AyeWeight != 50 || tally.NayWeight != 12 {
		t.Fatalf("expected 50/12, got %d/%d", tally.AyeWeight, tally.NayWeight)
	}

	// voter-b's lock releases at height 3, voter-a's at height 5.
	if err := module.Handler.WithdrawHandler(ctx, "voter-a", vote.VoteID); !errors.Is(err, domainerrors.ErrLockNotReleasable) {
		t.Fatalf("expected voter-a lock held, got %v", err)
	}
	if err := module.Handler.WithdrawHandler(ctx, "voter-b", vote.VoteID); err != nil {
		t.Fatalf("voter-b withdraw failed: %v", err)
	}

	module.Heights.Set(6)
	if err := module.Handler.WithdrawHandler(ctx, "voter-a", vote.VoteID); err != nil {
		t.Fatalf("voter-a withdraw failed: %v", err)
	}
	if err := module.Handler.WithdrawHandler(ctx, "voter-a", vote.VoteID); !errors.Is(err, domainerrors.ErrLockNotFound) {
		t.Fatalf("expected repeat withdrawal to fail, got %v", err)
	}

	if _, err := module.Handler.LockHandler(ctx, "voter-a", vote.VoteID); !errors.Is(err, domainerrors.ErrLockNotFound) {
		t.Fatalf("expected lock gone, got %v", err)
	}
}

func TestGovernanceCreatorCannotVote(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil)
	ctx := context.Background()
	module.Ledger.SetBalance("alice", 100)

	vote, err := module.Handler.CreateVoteHandler(ctx, "alice", httptransport.CreateVoteRequest{
		VoteType: "simple",
		Duration: 10,
	})
	if err != nil {
		t.Fatalf("create vote failed: %v", err)
	}
	if err := module.Handler.CastBallotHandler(ctx, "alice", vote.VoteID, httptransport.CastBallotRequest{Side: "aye"}); !errors.Is(err, domainerrors.ErrSelfVoteForbidden) {
		t.Fatalf("expected self vote rejection, got %v", err)
	}
}
