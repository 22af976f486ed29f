package commands

import (
	"context"
	"log/slog"

	application "govledger/contexts/governance/voting-engine/application"
	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	"govledger/contexts/governance/voting-engine/ports"
)

// CastBallotCommand is the input for the simple casting protocol.
type CastBallotCommand struct {
	Voter  string
	VoteID uint64
	Side   entities.BallotSide
}

// BallotUseCase implements the two casting protocols. Simple votes take bare
// Aye/Nay ballots; lock-weighted votes take a deposit and a lock duration on
// top of the same side-exclusivity rules.
type BallotUseCase struct {
	Votes      ports.VoteRepository
	Ledger     ports.LockLedger
	Heights    ports.HeightSource
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	LockPeriod uint64
	Logger     *slog.Logger
}

// CastBallot records a simple Aye/Nay ballot. Voting the same side twice is
// a hard rejection; voting the opposite side moves the voter across.
func (uc BallotUseCase) CastBallot(ctx context.Context, cmd CastBallotCommand) error {
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
	if vote.VoteType != entities.VoteTypeSimple {
		return domainerrors.ErrVoteTypeMismatch
	}

	if err := uc.recordBallot(ctx, cmd.VoteID, cmd.Voter, cmd.Side); err != nil {
		return err
	}
	if err := uc.appendBallotEvent(ctx, cmd.VoteID, cmd.Voter, cmd.Side, nil); err != nil {
		return err
	}

	logger.Info("ballot cast",
		"event", "governance_ballot_cast",
		"module", "governance/voting-engine",
		"layer", "application",
		"vote_id", cmd.VoteID,
		"voter", cmd.Voter,
		"side", string(cmd.Side),
	)
	return nil
}

// placeBallot applies side exclusivity to in-memory copies of the two voter
// sets: same side rejects, opposite side switches, otherwise append. It
// mutates nothing in the store.
func placeBallot(aye, nay []string, voter string, side entities.BallotSide) ([]string, []string, error) {
	target, other := aye, nay
	if side == entities.SideNay {
		target, other = nay, aye
	}
	if contains(target, voter) {
		return nil, nil, domainerrors.ErrSameSideBallot
	}
	other = remove(other, voter)
	target = append(target, voter)
	if side == entities.SideNay {
		return other, target, nil
	}
	return target, other, nil
}

// recordBallot loads both voter sets, applies the side rules, and persists
// the updated sets.
func (uc BallotUseCase) recordBallot(ctx context.Context, voteID uint64, voter string, side entities.BallotSide) error {
	aye, err := uc.Votes.VotedAccounts(ctx, voteID, entities.SideAye)
	if err != nil {
		return err
	}
	nay, err := uc.Votes.VotedAccounts(ctx, voteID, entities.SideNay)
	if err != nil {
		return err
	}
	aye, nay, err = placeBallot(aye, nay, voter, side)
	if err != nil {
		return err
	}
	if err := uc.Votes.SaveVotedAccounts(ctx, voteID, entities.SideAye, aye); err != nil {
		return err
	}
	return uc.Votes.SaveVotedAccounts(ctx, voteID, entities.SideNay, nay)
}

func contains(accounts []string, account string) bool {
	for _, candidate := range accounts {
		if candidate == account {
			return true
		}
	}
	return false
}

func remove(accounts []string, account string) []string {
	for i, candidate := range accounts {
		if candidate == account {
			return append(accounts[:i], accounts[i+1:]...)
		}
	}
	return accounts
}
