package queries

import (
	"context"

	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	"govledger/contexts/governance/voting-engine/ports"
)

// VoteQueries serves the read side: vote records with their payload digest,
// creator enumeration, voter sets, locks, and tally results.
type VoteQueries struct {
	Votes ports.VoteRepository
}

// VoteDetail pairs a vote record with its recorded payload digest.
type VoteDetail struct {
	Vote   entities.VoteRecord
	Digest string
}

func (uc VoteQueries) GetVote(ctx context.Context, voteID uint64) (VoteDetail, error) {
	vote, err := uc.Votes.GetVote(ctx, voteID)
	if err != nil {
		return VoteDetail{}, err
	}
	digest, err := uc.Votes.VoteDigest(ctx, voteID)
	if err != nil {
		return VoteDetail{}, err
	}
	return VoteDetail{Vote: vote, Digest: digest}, nil
}

func (uc VoteQueries) ListByCreator(ctx context.Context, creator string) ([]entities.VoteRecord, error) {
	if creator == "" {
		return nil, domainerrors.ErrInvalidVoteInput
	}
	return uc.Votes.ListVotesByCreator(ctx, creator)
}

// BallotSets returns both voter sets in insertion order.
func (uc VoteQueries) BallotSets(ctx context.Context, voteID uint64) (aye []string, nay []string, err error) {
	if _, err := uc.Votes.GetVote(ctx, voteID); err != nil {
		return nil, nil, err
	}
	aye, err = uc.Votes.VotedAccounts(ctx, voteID, entities.SideAye)
	if err != nil {
		return nil, nil, err
	}
	nay, err = uc.Votes.VotedAccounts(ctx, voteID, entities.SideNay)
	if err != nil {
		return nil, nil, err
	}
	return aye, nay, nil
}

// Tally returns the concluded result. A vote that exists but has not
// concluded yet reports the state conflict rather than a blank result.
func (uc VoteQueries) Tally(ctx context.Context, voteID uint64) (entities.TallyResult, error) {
	if _, err := uc.Votes.GetVote(ctx, voteID); err != nil {
		return entities.TallyResult{}, err
	}
	result, found, err := uc.Votes.GetTallyResult(ctx, voteID)
	if err != nil {
		return entities.TallyResult{}, err
	}
	if !found {
		return entities.TallyResult{}, domainerrors.ErrVoteNotConcluded
	}
	return result, nil
}

// LockOf returns the lock a voter holds on a vote.
func (uc VoteQueries) LockOf(ctx context.Context, voteID uint64, voter string) (entities.LockInfo, error) {
	if _, err := uc.Votes.GetVote(ctx, voteID); err != nil {
		return entities.LockInfo{}, err
	}
	lock, found, err := uc.Votes.GetLock(ctx, voteID, voter)
	if err != nil {
		return entities.LockInfo{}, err
	}
	if !found {
		return entities.LockInfo{}, domainerrors.ErrLockNotFound
	}
	return lock, nil
}
