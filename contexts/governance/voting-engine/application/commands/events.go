package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"govledger/contexts/governance/voting-engine/domain/entities"
	"govledger/contexts/governance/voting-engine/ports"
)

const (
	eventVoteCreated   = "governance.vote.created"
	eventBallotCast    = "governance.ballot.cast"
	eventVoteConcluded = "governance.vote.concluded"
	eventLockWithdrawn = "governance.lock.withdrawn"
)

// Events are partitioned by vote id so per-vote consumers observe them in
// commit order.
func newGovernanceEnvelope(
	eventID string,
	eventType string,
	voteID uint64,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "voting-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "vote_id",
		PartitionKey:     strconv.FormatUint(voteID, 10),
		Data:             payload,
	}, nil
}

// appendEvent writes an envelope to the outbox. Outbox is optional for pure
// read/test wiring, so nil is treated as no-op.
func appendEvent(
	ctx context.Context,
	outbox ports.OutboxWriter,
	idGen ports.IDGenerator,
	clock ports.Clock,
	eventType string,
	voteID uint64,
	data map[string]any,
) error {
	if outbox == nil {
		return nil
	}
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	occurredAt := time.Now().UTC()
	if clock != nil {
		occurredAt = clock.Now().UTC()
	}
	envelope, err := newGovernanceEnvelope(eventID, eventType, voteID, occurredAt, data)
	if err != nil {
		return err
	}
	return outbox.AppendOutbox(ctx, envelope)
}

func (uc LifecycleUseCase) appendVoteEvent(ctx context.Context, eventType string, vote entities.VoteRecord, metadata map[string]any) error {
	data := map[string]any{
		"vote_id":        vote.VoteID,
		"creator":        vote.Creator,
		"vote_type":      string(vote.VoteType),
		"created_height": vote.CreatedHeight,
		"expiry_height":  vote.ExpiryHeight,
		"concluded":      vote.Concluded,
	}
	for key, value := range metadata {
		data[key] = value
	}
	return appendEvent(ctx, uc.Outbox, uc.IDGen, uc.Clock, eventType, vote.VoteID, data)
}

func (uc BallotUseCase) appendBallotEvent(ctx context.Context, voteID uint64, voter string, side entities.BallotSide, metadata map[string]any) error {
	data := map[string]any{
		"vote_id": voteID,
		"voter":   voter,
		"side":    string(side),
	}
	for key, value := range metadata {
		data[key] = value
	}
	return appendEvent(ctx, uc.Outbox, uc.IDGen, uc.Clock, eventBallotCast, voteID, data)
}

func (uc WithdrawalUseCase) appendWithdrawEvent(ctx context.Context, voteID uint64, voter string) error {
	data := map[string]any{
		"vote_id": voteID,
		"voter":   voter,
	}
	return appendEvent(ctx, uc.Outbox, uc.IDGen, uc.Clock, eventLockWithdrawn, voteID, data)
}
