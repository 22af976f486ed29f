package postgresadapter

import (
	"time"

	"govledger/contexts/governance/voting-engine/domain/entities"
)

const (
	voteCounterRowID = 1
	chainHeightRowID = 1
)

type voteModel struct {
	ID            uint64    `gorm:"column:id;primaryKey"`
	Creator       string    `gorm:"column:creator"`
	VoteType      string    `gorm:"column:vote_type"`
	CreatedHeight uint64    `gorm:"column:created_height"`
	ExpiryHeight  uint64    `gorm:"column:expiry_height"`
	Concluded     bool      `gorm:"column:concluded"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "governance_votes"
}

func voteModelFromEntity(vote entities.VoteRecord) voteModel {
	now := time.Now().UTC()
	return voteModel{
		ID:            vote.VoteID,
		Creator:       vote.Creator,
		VoteType:      string(vote.VoteType),
		CreatedHeight: vote.CreatedHeight,
		ExpiryHeight:  vote.ExpiryHeight,
		Concluded:     vote.Concluded,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (m voteModel) toEntity() entities.VoteRecord {
	return entities.VoteRecord{
		VoteID:        m.ID,
		Creator:       m.Creator,
		VoteType:      entities.VoteType(m.VoteType),
		CreatedHeight: m.CreatedHeight,
		ExpiryHeight:  m.ExpiryHeight,
		Concluded:     m.Concluded,
	}
}

type voteCounterModel struct {
	ID    int    `gorm:"column:id;primaryKey"`
	Count uint64 `gorm:"column:count"`
}

func (voteCounterModel) TableName() string {
	return "governance_vote_counter"
}

type creatorCountModel struct {
	Creator string `gorm:"column:creator;primaryKey"`
	Count   uint64 `gorm:"column:count"`
}

func (creatorCountModel) TableName() string {
	return "governance_creator_counts"
}

type ballotModel struct {
	VoteID   uint64 `gorm:"column:vote_id;primaryKey"`
	Side     string `gorm:"column:side;primaryKey"`
	Voter    string `gorm:"column:voter;primaryKey"`
	Position int    `gorm:"column:position"`
}

func (ballotModel) TableName() string {
	return "governance_ballots"
}

type lockModel struct {
	VoteID   uint64 `gorm:"column:vote_id;primaryKey"`
	Voter    string `gorm:"column:voter;primaryKey"`
	Deposit  uint64 `gorm:"column:deposit"`
	Duration uint64 `gorm:"column:duration"`
	Until    uint64 `gorm:"column:until_height"`
}

func (lockModel) TableName() string {
	return "governance_locks"
}

func lockModelFromEntity(lock entities.LockInfo) lockModel {
	return lockModel{
		VoteID:   lock.VoteID,
		Voter:    lock.Voter,
		Deposit:  lock.Deposit,
		Duration: lock.Duration,
		Until:    lock.Until,
	}
}

func (m lockModel) toEntity() entities.LockInfo {
	return entities.LockInfo{
		VoteID:   m.VoteID,
		Voter:    m.Voter,
		Deposit:  m.Deposit,
		Duration: m.Duration,
		Until:    m.Until,
	}
}

type tallyModel struct {
	VoteID    uint64 `gorm:"column:vote_id;primaryKey"`
	AyeWeight uint64 `gorm:"column:aye_weight"`
	NayWeight uint64 `gorm:"column:nay_weight"`
}

func (tallyModel) TableName() string {
	return "governance_tally_results"
}

type digestModel struct {
	VoteID uint64 `gorm:"column:vote_id;primaryKey"`
	Digest string `gorm:"column:digest"`
}

func (digestModel) TableName() string {
	return "governance_vote_digests"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "governance_outbox"
}

type accountBalanceModel struct {
	Account string `gorm:"column:account;primaryKey"`
	Total   uint64 `gorm:"column:total"`
}

func (accountBalanceModel) TableName() string {
	return "ledger_account_balances"
}

type ledgerLockModel struct {
	LockID      string    `gorm:"column:lock_id;primaryKey"`
	Account     string    `gorm:"column:account;primaryKey"`
	Amount      uint64    `gorm:"column:amount"`
	MaxLifetime uint64    `gorm:"column:max_lifetime"`
	Reasons     string    `gorm:"column:reasons"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (ledgerLockModel) TableName() string {
	return "ledger_locks"
}

type chainHeightModel struct {
	ID     int    `gorm:"column:id;primaryKey"`
	Height uint64 `gorm:"column:height"`
}

func (chainHeightModel) TableName() string {
	return "ledger_height"
}
