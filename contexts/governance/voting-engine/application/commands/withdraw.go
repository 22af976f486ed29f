package commands

import (
	"context"
	"log/slog"

	application "govledger/contexts/governance/voting-engine/application"
	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	"govledger/contexts/governance/voting-engine/ports"
)

// WithdrawCommand asks for a voter's locked deposit back.
type WithdrawCommand struct {
	Voter  string
	VoteID uint64
}

// WithdrawalUseCase releases lock-ballot deposits once a vote has concluded
// and the lock's release height has passed.
type WithdrawalUseCase struct {
	Votes   ports.VoteRepository
	Ledger  ports.LockLedger
	Heights ports.HeightSource
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// Withdraw removes the ledger lock and deletes the lock record. A second
// attempt for the same (vote, voter) fails on the missing record rather than
// double-releasing.
func (uc WithdrawalUseCase) Withdraw(ctx context.Context, cmd WithdrawCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	vote, err := uc.Votes.GetVote(ctx, cmd.VoteID)
	if err != nil {
		return err
	}
	if vote.VoteType != entities.VoteTypeLockWeighted {
		return domainerrors.ErrVoteTypeMismatch
	}
	if !vote.Concluded {
		return domainerrors.ErrVoteNotConcluded
	}
	lock, found, err := uc.Votes.GetLock(ctx, cmd.VoteID, cmd.Voter)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrLockNotFound
	}
	height, err := uc.Heights.CurrentHeight(ctx)
	if err != nil {
		return err
	}
	if !lock.Releasable(height) {
		return domainerrors.ErrLockNotReleasable
	}

	if err := uc.Ledger.RemoveLock(ctx, LockIdentifier(cmd.VoteID), cmd.Voter); err != nil {
		return err
	}
	if err := uc.Votes.DeleteLock(ctx, cmd.VoteID, cmd.Voter); err != nil {
		return err
	}

	if err := uc.appendWithdrawEvent(ctx, cmd.VoteID, cmd.Voter); err != nil {
		return err
	}

	logger.Info("locked deposit withdrawn",
		"event", "governance_lock_withdrawn",
		"module", "governance/voting-engine",
		"layer", "application",
		"vote_id", cmd.VoteID,
		"voter", cmd.Voter,
		"deposit", lock.Deposit,
	)
	return nil
}
