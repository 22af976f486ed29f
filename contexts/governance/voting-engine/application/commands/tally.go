package commands

import (
	"context"

	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
)

// tally computes the per-side weights for a vote. It runs only from
// ConcludeVote, which owns the existence and already-concluded guards, so no
// such checks are repeated here.
func (uc LifecycleUseCase) tally(ctx context.Context, vote entities.VoteRecord) (entities.TallyResult, error) {
	switch vote.VoteType {
	case entities.VoteTypeSimple:
		aye, err := uc.Votes.VotedAccounts(ctx, vote.VoteID, entities.SideAye)
		if err != nil {
			return entities.TallyResult{}, err
		}
		nay, err := uc.Votes.VotedAccounts(ctx, vote.VoteID, entities.SideNay)
		if err != nil {
			return entities.TallyResult{}, err
		}
		return entities.TallyResult{
			VoteID:    vote.VoteID,
			AyeWeight: uint64(len(aye)),
			NayWeight: uint64(len(nay)),
		}, nil
	case entities.VoteTypeLockWeighted:
		ayeWeight, err := uc.sideWeight(ctx, vote.VoteID, entities.SideAye)
		if err != nil {
			return entities.TallyResult{}, err
		}
		nayWeight, err := uc.sideWeight(ctx, vote.VoteID, entities.SideNay)
		if err != nil {
			return entities.TallyResult{}, err
		}
		return entities.TallyResult{
			VoteID:    vote.VoteID,
			AyeWeight: ayeWeight,
			NayWeight: nayWeight,
		}, nil
	default:
		return entities.TallyResult{}, domainerrors.ErrUnsupportedVoteType
	}
}

// sideWeight sums deposit x duration over the side's own voter set. A voter
// without a lock record contributes zero weight.
func (uc LifecycleUseCase) sideWeight(ctx context.Context, voteID uint64, side entities.BallotSide) (uint64, error) {
	accounts, err := uc.Votes.VotedAccounts(ctx, voteID, side)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, account := range accounts {
		lock, found, err := uc.Votes.GetLock(ctx, voteID, account)
		if err != nil {
			return 0, err
		}
		if !found {
			continue
		}
		weight, ok := lock.Weight()
		if !ok {
			return 0, domainerrors.ErrWeightOverflow
		}
		total, ok = checkedAdd(total, weight)
		if !ok {
			return 0, domainerrors.ErrWeightOverflow
		}
	}
	return total, nil
}
