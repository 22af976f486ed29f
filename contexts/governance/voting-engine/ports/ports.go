package ports

import (
	"context"
	"time"

	"govledger/contexts/governance/voting-engine/domain/entities"

	contractsv1 "govledger/contracts/gen/events/v1"
)

// VoteRepository owns every piece of mutable governance state: the vote
// counter, vote records, the creator index, per-side voter sets, lock
// records, tally results, and payload digests. All reads see the latest
// committed write; no caller keeps copies across operations.
type VoteRepository interface {
	VoteCount(ctx context.Context) (uint64, error)
	CreatedCount(ctx context.Context, creator string) (uint64, error)
	HasVote(ctx context.Context, voteID uint64) (bool, error)
	GetVote(ctx context.Context, voteID uint64) (entities.VoteRecord, error)
	// InsertVote persists a freshly minted vote together with its payload
	// digest, advances the vote counter to the new id, and indexes the vote
	// under its creator.
	InsertVote(ctx context.Context, vote entities.VoteRecord, digest string) error
	SaveVote(ctx context.Context, vote entities.VoteRecord) error
	ListVotesByCreator(ctx context.Context, creator string) ([]entities.VoteRecord, error)
	VoteDigest(ctx context.Context, voteID uint64) (string, error)

	VotedAccounts(ctx context.Context, voteID uint64, side entities.BallotSide) ([]string, error)
	SaveVotedAccounts(ctx context.Context, voteID uint64, side entities.BallotSide, accounts []string) error

	GetLock(ctx context.Context, voteID uint64, voter string) (entities.LockInfo, bool, error)
	SaveLock(ctx context.Context, lock entities.LockInfo) error
	DeleteLock(ctx context.Context, voteID uint64, voter string) error

	SaveTallyResult(ctx context.Context, result entities.TallyResult) error
	GetTallyResult(ctx context.Context, voteID uint64) (entities.TallyResult, bool, error)
}

// LockLedger is the external fungible-token collaborator: balance queries
// and named lock placement/removal. Its accounting is not owned here.
type LockLedger interface {
	FreeBalance(ctx context.Context, account string) (uint64, error)
	SetLock(ctx context.Context, lockID string, account string, amount uint64, maxLifetime uint64, reasons entities.WithdrawReasons) error
	RemoveLock(ctx context.Context, lockID string, account string) error
}

// HeightSource exposes the externally advanced ledger height. It is the only
// notion of time the engine consumes.
type HeightSource interface {
	CurrentHeight(ctx context.Context) (uint64, error)
}

// PayloadHasher digests proposal payloads for the on-record content hash.
type PayloadHasher interface {
	Digest(data []byte) string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxWriter appends an event envelope to the pending outbox. Appends
// happen only after the operation's state mutations have committed.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
