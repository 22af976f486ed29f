package commands

import (
	"context"

	application "govledger/contexts/governance/voting-engine/application"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
)

// ConcludeVote tallies an expired vote and flips it to Concluded. Anyone may
// call it; the caller identity carries no authorization weight here.
func (uc LifecycleUseCase) ConcludeVote(ctx context.Context, voteID uint64) error {
	logger := application.ResolveLogger(uc.Logger)

	vote, err := uc.Votes.GetVote(ctx, voteID)
	if err != nil {
		return err
	}
	if vote.Concluded {
		return domainerrors.ErrVoteAlreadyConcluded
	}
	height, err := uc.Heights.CurrentHeight(ctx)
	if err != nil {
		return err
	}
	if !vote.Expired(height) {
		return domainerrors.ErrVoteNotExpired
	}

	result, err := uc.tally(ctx, vote)
	if err != nil {
		return err
	}
	if err := uc.Votes.SaveTallyResult(ctx, result); err != nil {
		return err
	}

	vote.Concluded = true
	if err := uc.Votes.SaveVote(ctx, vote); err != nil {
		return err
	}

	if err := uc.appendVoteEvent(ctx, eventVoteConcluded, vote, map[string]any{
		"aye_weight": result.AyeWeight,
		"nay_weight": result.NayWeight,
	}); err != nil {
		return err
	}

	logger.Info("vote concluded",
		"event", "governance_vote_concluded",
		"module", "governance/voting-engine",
		"layer", "application",
		"vote_id", vote.VoteID,
		"aye_weight", result.AyeWeight,
		"nay_weight", result.NayWeight,
	)
	return nil
}
