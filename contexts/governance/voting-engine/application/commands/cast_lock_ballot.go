package commands

import (
	"context"
	"fmt"

	application "govledger/contexts/governance/voting-engine/application"
	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
)

// CastLockBallotCommand is the input for the lock-weighted casting protocol.
type CastLockBallotCommand struct {
	Voter    string
	VoteID   uint64
	Side     entities.BallotSide
	Deposit  uint64
	Duration uint64
}

// CastLockBallot records a deposit-weighted ballot. A voter gets exactly one
// lock attempt per vote; the deposit must stay strictly below the free
// balance and the lock must outlast the vote. Every check runs before any
// state is touched so a rejection leaves no lock behind.
func (uc BallotUseCase) CastLockBallot(ctx context.Context, cmd CastLockBallotCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Side != entities.SideAye && cmd.Side != entities.SideNay {
		return domainerrors.ErrInvalidBallotSide
	}

	vote, err := uc.Votes.GetVote(ctx, cmd.VoteID)
	if err != nil {
		return err
	}
	if vote.Creator == cmd.Voter {
		return domainerrors.ErrSelfVoteForbidden
	}
	height, err := uc.Heights.CurrentHeight(ctx)
	if err != nil {
		return err
	}
	if !vote.AcceptingBallots(height) {
		return domainerrors.ErrVoteExpired
	}
	if vote.VoteType != entities.VoteTypeLockWeighted {
		return domainerrors.ErrVoteTypeMismatch
	}

	if _, found, err := uc.Votes.GetLock(ctx, cmd.VoteID, cmd.Voter); err != nil {
		return err
	} else if found {
		return domainerrors.ErrDuplicateLock
	}

	free, err := uc.Ledger.FreeBalance(ctx, cmd.Voter)
	if err != nil {
		return err
	}
	if cmd.Deposit >= free {
		return domainerrors.ErrInsufficientBalance
	}

	until, ok := checkedAdd(height, cmd.Duration)
	if !ok {
		return domainerrors.ErrExpiryOverflow
	}
	if until < vote.ExpiryHeight {
		return domainerrors.ErrLockTooShort
	}

	aye, err := uc.Votes.VotedAccounts(ctx, cmd.VoteID, entities.SideAye)
	if err != nil {
		return err
	}
	nay, err := uc.Votes.VotedAccounts(ctx, cmd.VoteID, entities.SideNay)
	if err != nil {
		return err
	}
	aye, nay, err = placeBallot(aye, nay, cmd.Voter, cmd.Side)
	if err != nil {
		return err
	}

	if err := uc.Votes.SaveLock(ctx, entities.LockInfo{
		VoteID:   cmd.VoteID,
		Voter:    cmd.Voter,
		Deposit:  cmd.Deposit,
		Duration: cmd.Duration,
		Until:    until,
	}); err != nil {
		return err
	}
	// The lock keeps transaction fees debitable for its whole lifetime.
	if err := uc.Ledger.SetLock(
		ctx,
		LockIdentifier(cmd.VoteID),
		cmd.Voter,
		cmd.Deposit,
		uc.LockPeriod,
		entities.WithdrawReasonsExcept(entities.WithdrawReasonTransactionFee),
	); err != nil {
		return err
	}
	if err := uc.Votes.SaveVotedAccounts(ctx, cmd.VoteID, entities.SideAye, aye); err != nil {
		return err
	}
	if err := uc.Votes.SaveVotedAccounts(ctx, cmd.VoteID, entities.SideNay, nay); err != nil {
		return err
	}

	if err := uc.appendBallotEvent(ctx, cmd.VoteID, cmd.Voter, cmd.Side, map[string]any{
		"deposit":      cmd.Deposit,
		"duration":     cmd.Duration,
		"until_height": until,
	}); err != nil {
		return err
	}

	logger.Info("lock ballot cast",
		"event", "governance_lock_ballot_cast",
		"module", "governance/voting-engine",
		"layer", "application",
		"vote_id", cmd.VoteID,
		"voter", cmd.Voter,
		"side", string(cmd.Side),
		"deposit", cmd.Deposit,
		"until_height", until,
	)
	return nil
}

// LockIdentifier names the ledger lock held for a vote. All of a vote's
// lock ballots share one identifier; the (lock, account) pair stays unique.
func LockIdentifier(voteID uint64) string {
	return fmt.Sprintf("govvote/%016x", voteID)
}
