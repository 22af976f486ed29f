package httpadapter

import (
	"context"
	"log/slog"

	"govledger/contexts/governance/voting-engine/application/commands"
	"govledger/contexts/governance/voting-engine/application/queries"
	"govledger/contexts/governance/voting-engine/domain/entities"
	httptransport "govledger/contexts/governance/voting-engine/transport/http"
)

type Handler struct {
	Lifecycle   commands.LifecycleUseCase
	Ballots     commands.BallotUseCase
	Withdrawals commands.WithdrawalUseCase
	Queries     queries.VoteQueries
	Logger      *slog.Logger
}

func (h Handler) CreateVoteHandler(ctx context.Context, creator string, req httptransport.CreateVoteRequest) (httptransport.VoteResponse, error) {
	vote, err := h.Lifecycle.CreateVote(ctx, commands.CreateVoteCommand{
		Creator:  creator,
		VoteType: entities.VoteType(req.VoteType),
		Duration: req.Duration,
		Payload:  []byte(req.Payload),
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return voteResponse(vote, ""), nil
}

func (h Handler) CastBallotHandler(ctx context.Context, voter string, voteID uint64, req httptransport.CastBallotRequest) error {
	return h.Ballots.CastBallot(ctx, commands.CastBallotCommand{
		Voter:  voter,
		VoteID: voteID,
		Side:   entities.BallotSide(req.Side),
	})
}

func (h Handler) CastLockBallotHandler(ctx context.Context, voter string, voteID uint64, req httptransport.CastLockBallotRequest) error {
	return h.Ballots.CastLockBallot(ctx, commands.CastLockBallotCommand{
		Voter:    voter,
		VoteID:   voteID,
		Side:     entities.BallotSide(req.Side),
		Deposit:  req.Deposit,
		Duration: req.Duration,
	})
}

func (h Handler) ConcludeVoteHandler(ctx context.Context, voteID uint64) error {
	return h.Lifecycle.ConcludeVote(ctx, voteID)
}

func (h Handler) WithdrawHandler(ctx context.Context, voter string, voteID uint64) error {
	return h.Withdrawals.Withdraw(ctx, commands.WithdrawCommand{
		Voter:  voter,
		VoteID: voteID,
	})
}

func (h Handler) GetVoteHandler(ctx context.Context, voteID uint64) (httptransport.VoteResponse, error) {
	detail, err := h.Queries.GetVote(ctx, voteID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return voteResponse(detail.Vote, detail.Digest), nil
}

func (h Handler) ListByCreatorHandler(ctx context.Context, creator string) (httptransport.VoteListResponse, error) {
	votes, err := h.Queries.ListByCreator(ctx, creator)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	items := make([]httptransport.VoteResponse, 0, len(votes))
	for _, vote := range votes {
		items = append(items, voteResponse(vote, ""))
	}
	return httptransport.VoteListResponse{Items: items}, nil
}

func (h Handler) BallotSetsHandler(ctx context.Context, voteID uint64) (httptransport.BallotSetsResponse, error) {
	aye, nay, err := h.Queries.BallotSets(ctx, voteID)
	if err != nil {
		return httptransport.BallotSetsResponse{}, err
	}
	return httptransport.BallotSetsResponse{
		VoteID: voteID,
		Aye:    aye,
		Nay:    nay,
	}, nil
}

func (h Handler) TallyHandler(ctx context.Context, voteID uint64) (httptransport.TallyResponse, error) {
	result, err := h.Queries.Tally(ctx, voteID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		VoteID:    result.VoteID,
		AyeWeight: result.AyeWeight,
		NayWeight: result.NayWeight,
	}, nil
}

func (h Handler) LockHandler(ctx context.Context, voter string, voteID uint64) (httptransport.LockResponse, error) {
	lock, err := h.Queries.LockOf(ctx, voteID, voter)
	if err != nil {
		return httptransport.LockResponse{}, err
	}
	return httptransport.LockResponse{
		VoteID:   lock.VoteID,
		Voter:    lock.Voter,
		Deposit:  lock.Deposit,
		Duration: lock.Duration,
		Until:    lock.Until,
	}, nil
}

func voteResponse(vote entities.VoteRecord, digest string) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:        vote.VoteID,
		Creator:       vote.Creator,
		VoteType:      string(vote.VoteType),
		CreatedHeight: vote.CreatedHeight,
		ExpiryHeight:  vote.ExpiryHeight,
		Concluded:     vote.Concluded,
		Digest:        digest,
	}
}
