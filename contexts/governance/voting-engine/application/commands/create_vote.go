package commands

import (
	"context"
	"log/slog"
	"math"

	application "govledger/contexts/governance/voting-engine/application"
	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	"govledger/contexts/governance/voting-engine/ports"
)

// MaxPayloadBytes caps proposal metadata size. Requests over the cap are
// rejected before any state is touched.
const MaxPayloadBytes = 256

// CreateVoteCommand is the write-model input for raising a proposal.
type CreateVoteCommand struct {
	Creator  string
	VoteType entities.VoteType
	Duration uint64
	Payload  []byte
}

// LifecycleUseCase creates votes and transitions them from Open to Concluded
// exactly once. Conclusion runs the tally before flipping the record.
type LifecycleUseCase struct {
	Votes   ports.VoteRepository
	Heights ports.HeightSource
	Hasher  ports.PayloadHasher
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// CreateVote allocates the next sequential vote id, persists the record
// together with the payload digest and creator index entry, and emits the
// created event.
func (uc LifecycleUseCase) CreateVote(ctx context.Context, cmd CreateVoteCommand) (entities.VoteRecord, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Creator == "" {
		return entities.VoteRecord{}, domainerrors.ErrInvalidVoteInput
	}
	if cmd.VoteType != entities.VoteTypeSimple && cmd.VoteType != entities.VoteTypeLockWeighted {
		return entities.VoteRecord{}, domainerrors.ErrUnsupportedVoteType
	}
	// Expiry must land strictly after the creation height.
	if cmd.Duration == 0 {
		return entities.VoteRecord{}, domainerrors.ErrInvalidVoteInput
	}
	if len(cmd.Payload) > MaxPayloadBytes {
		logger.Warn("vote create payload rejected",
			"event", "governance_vote_create_payload_rejected",
			"module", "governance/voting-engine",
			"layer", "application",
			"creator", cmd.Creator,
			"payload_bytes", len(cmd.Payload),
		)
		return entities.VoteRecord{}, domainerrors.ErrPayloadTooLarge
	}

	count, err := uc.Votes.VoteCount(ctx)
	if err != nil {
		return entities.VoteRecord{}, err
	}
	if count == math.MaxUint64 {
		return entities.VoteRecord{}, domainerrors.ErrVoteCountOverflow
	}
	voteID := count + 1

	createdCount, err := uc.Votes.CreatedCount(ctx, cmd.Creator)
	if err != nil {
		return entities.VoteRecord{}, err
	}
	if createdCount == math.MaxUint64 {
		return entities.VoteRecord{}, domainerrors.ErrCreatorCountOverflow
	}

	height, err := uc.Heights.CurrentHeight(ctx)
	if err != nil {
		return entities.VoteRecord{}, err
	}
	expiry, ok := checkedAdd(height, cmd.Duration)
	if !ok {
		return entities.VoteRecord{}, domainerrors.ErrExpiryOverflow
	}

	// The counter discipline makes a collision unreachable; the check guards
	// against a store that was restored out of step with the counter.
	exists, err := uc.Votes.HasVote(ctx, voteID)
	if err != nil {
		return entities.VoteRecord{}, err
	}
	if exists {
		return entities.VoteRecord{}, domainerrors.ErrVoteAlreadyExists
	}

	vote := entities.VoteRecord{
		VoteID:        voteID,
		Creator:       cmd.Creator,
		VoteType:      cmd.VoteType,
		CreatedHeight: height,
		ExpiryHeight:  expiry,
	}
	if err := uc.Votes.InsertVote(ctx, vote, uc.Hasher.Digest(cmd.Payload)); err != nil {
		return entities.VoteRecord{}, err
	}

	if err := uc.appendVoteEvent(ctx, eventVoteCreated, vote, map[string]any{
		"payload_bytes": len(cmd.Payload),
	}); err != nil {
		return entities.VoteRecord{}, err
	}

	logger.Info("vote created",
		"event", "governance_vote_created",
		"module", "governance/voting-engine",
		"layer", "application",
		"vote_id", vote.VoteID,
		"creator", vote.Creator,
		"vote_type", string(vote.VoteType),
		"expiry_height", vote.ExpiryHeight,
	)
	return vote, nil
}

func checkedAdd(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}
