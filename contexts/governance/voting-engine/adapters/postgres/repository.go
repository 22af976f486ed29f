package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	"govledger/contexts/governance/voting-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

var errLedgerLockMissing = errors.New("ledger lock not found")

// Repository backs every governance port with postgres. The ledger height
// and account balances are projections maintained by the chain-sync process;
// this repository only reads them and keeps the named-lock rows in step.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) VoteCount(ctx context.Context) (uint64, error) {
	var row voteCounterModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", voteCounterRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("governance_repo_vote_count_failed", err)
	}
	return row.Count, nil
}

func (r *Repository) CreatedCount(ctx context.Context, creator string) (uint64, error) {
	var row creatorCountModel
	err := r.db.WithContext(ctx).First(&row, "creator = ?", creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("governance_repo_created_count_failed", err, "creator", creator)
	}
	return row.Count, nil
}

func (r *Repository) HasVote(ctx context.Context, voteID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&voteModel{}).Where("id = ?", voteID).Count(&count).Error
	if err != nil {
		return false, r.logError("governance_repo_has_vote_failed", err, "vote_id", voteID)
	}
	return count > 0, nil
}

func (r *Repository) GetVote(ctx context.Context, voteID uint64) (entities.VoteRecord, error) {
	var row voteModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", voteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteRecord{}, domainerrors.ErrVoteNotFound
		}
		return entities.VoteRecord{}, r.logError("governance_repo_get_vote_failed", err, "vote_id", voteID)
	}
	return row.toEntity(), nil
}

// InsertVote writes the record, digest, counter bump, and creator count in
// one transaction so a minted vote never appears without its bookkeeping.
func (r *Repository) InsertVote(ctx context.Context, vote entities.VoteRecord, digest string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := voteModelFromEntity(vote)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrVoteAlreadyExists
			}
			return err
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vote_id"}},
			DoNothing: true,
		}).Create(&digestModel{VoteID: vote.VoteID, Digest: digest}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{"count": vote.VoteID}),
		}).Create(&voteCounterModel{ID: voteCounterRowID, Count: vote.VoteID}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "creator"}},
			DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("governance_creator_counts.count + 1")}),
		}).Create(&creatorCountModel{Creator: vote.Creator, Count: 1}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrVoteAlreadyExists) {
			return err
		}
		return r.logError("governance_repo_insert_vote_failed", err,
			"vote_id", vote.VoteID,
			"creator", vote.Creator,
		)
	}
	return nil
}

func (r *Repository) SaveVote(ctx context.Context, vote entities.VoteRecord) error {
	row := voteModelFromEntity(vote)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"concluded":  row.Concluded,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("governance_repo_save_vote_failed", err, "vote_id", vote.VoteID)
	}
	return nil
}

func (r *Repository) ListVotesByCreator(ctx context.Context, creator string) ([]entities.VoteRecord, error) {
	var rows []voteModel
	err := r.db.WithContext(ctx).
		Where("creator = ?", creator).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("governance_repo_list_by_creator_failed", err, "creator", creator)
	}
	items := make([]entities.VoteRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) VoteDigest(ctx context.Context, voteID uint64) (string, error) {
	var row digestModel
	err := r.db.WithContext(ctx).First(&row, "vote_id = ?", voteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrVoteNotFound
		}
		return "", r.logError("governance_repo_vote_digest_failed", err, "vote_id", voteID)
	}
	return row.Digest, nil
}

func (r *Repository) VotedAccounts(ctx context.Context, voteID uint64, side entities.BallotSide) ([]string, error) {
	var rows []ballotModel
	err := r.db.WithContext(ctx).
		Where("vote_id = ? AND side = ?", voteID, string(side)).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("governance_repo_voted_accounts_failed", err,
			"vote_id", voteID,
			"side", string(side),
		)
	}
	accounts := make([]string, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.Voter)
	}
	return accounts, nil
}

// SaveVotedAccounts replaces a side's set wholesale; position preserves the
// insertion order the tally and reads rely on.
func (r *Repository) SaveVotedAccounts(ctx context.Context, voteID uint64, side entities.BallotSide, accounts []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("vote_id = ? AND side = ?", voteID, string(side)).
			Delete(&ballotModel{}).Error; err != nil {
			return err
		}
		if len(accounts) == 0 {
			return nil
		}
		rows := make([]ballotModel, 0, len(accounts))
		for i, account := range accounts {
			rows = append(rows, ballotModel{
				VoteID:   voteID,
				Side:     string(side),
				Voter:    account,
				Position: i,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return r.logError("governance_repo_save_voted_accounts_failed", err,
			"vote_id", voteID,
			"side", string(side),
		)
	}
	return nil
}

func (r *Repository) GetLock(ctx context.Context, voteID uint64, voter string) (entities.LockInfo, bool, error) {
	var row lockModel
	err := r.db.WithContext(ctx).First(&row, "vote_id = ? AND voter = ?", voteID, voter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.LockInfo{}, false, nil
		}
		return entities.LockInfo{}, false, r.logError("governance_repo_get_lock_failed", err,
			"vote_id", voteID,
			"voter", voter,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveLock(ctx context.Context, lock entities.LockInfo) error {
	row := lockModelFromEntity(lock)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateLock
		}
		return r.logError("governance_repo_save_lock_failed", err,
			"vote_id", lock.VoteID,
			"voter", lock.Voter,
		)
	}
	return nil
}

func (r *Repository) DeleteLock(ctx context.Context, voteID uint64, voter string) error {
	result := r.db.WithContext(ctx).
		Where("vote_id = ? AND voter = ?", voteID, voter).
		Delete(&lockModel{})
	if result.Error != nil {
		return r.logError("governance_repo_delete_lock_failed", result.Error,
			"vote_id", voteID,
			"voter", voter,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrLockNotFound
	}
	return nil
}

func (r *Repository) SaveTallyResult(ctx context.Context, result entities.TallyResult) error {
	row := tallyModel{
		VoteID:    result.VoteID,
		AyeWeight: result.AyeWeight,
		NayWeight: result.NayWeight,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vote_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return r.logError("governance_repo_save_tally_failed", err, "vote_id", result.VoteID)
	}
	return nil
}

func (r *Repository) GetTallyResult(ctx context.Context, voteID uint64) (entities.TallyResult, bool, error) {
	var row tallyModel
	err := r.db.WithContext(ctx).First(&row, "vote_id = ?", voteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.TallyResult{}, false, nil
		}
		return entities.TallyResult{}, false, r.logError("governance_repo_get_tally_failed", err, "vote_id", voteID)
	}
	return entities.TallyResult{
		VoteID:    row.VoteID,
		AyeWeight: row.AyeWeight,
		NayWeight: row.NayWeight,
	}, true, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	outboxID := event.EventID
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	row := outboxModel{
		OutboxID:     outboxID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return r.logError("governance_repo_append_outbox_failed", err,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("governance_repo_list_pending_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		}).Error
	if err != nil {
		return r.logError("governance_repo_mark_outbox_published_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) FreeBalance(ctx context.Context, account string) (uint64, error) {
	var row accountBalanceModel
	err := r.db.WithContext(ctx).First(&row, "account = ?", account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("governance_repo_free_balance_failed", err, "account", account)
	}

	var locked uint64
	lookup := r.db.WithContext(ctx).Model(&ledgerLockModel{}).
		Where("account = ?", account).
		Select("COALESCE(MAX(amount), 0)").
		Scan(&locked)
	if lookup.Error != nil {
		return 0, r.logError("governance_repo_locked_amount_failed", lookup.Error, "account", account)
	}
	if locked >= row.Total {
		return 0, nil
	}
	return row.Total - locked, nil
}

func (r *Repository) SetLock(ctx context.Context, lockID string, account string, amount uint64, maxLifetime uint64, reasons entities.WithdrawReasons) error {
	row := ledgerLockModel{
		LockID:      lockID,
		Account:     account,
		Amount:      amount,
		MaxLifetime: maxLifetime,
		Reasons:     joinReasons(reasons),
		CreatedAt:   time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lock_id"}, {Name: "account"}},
		DoUpdates: clause.Assignments(map[string]any{
			"amount":       row.Amount,
			"max_lifetime": row.MaxLifetime,
			"reasons":      row.Reasons,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("governance_repo_set_lock_failed", err,
			"lock_id", lockID,
			"account", account,
		)
	}
	return nil
}

func (r *Repository) RemoveLock(ctx context.Context, lockID string, account string) error {
	result := r.db.WithContext(ctx).
		Where("lock_id = ? AND account = ?", lockID, account).
		Delete(&ledgerLockModel{})
	if result.Error != nil {
		return r.logError("governance_repo_remove_lock_failed", result.Error,
			"lock_id", lockID,
			"account", account,
		)
	}
	if result.RowsAffected == 0 {
		return errLedgerLockMissing
	}
	return nil
}

func (r *Repository) CurrentHeight(ctx context.Context) (uint64, error) {
	var row chainHeightModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", chainHeightRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("governance_repo_current_height_failed", err)
	}
	return row.Height, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("governance repository operation failed", fields...)
	return err
}

func joinReasons(reasons entities.WithdrawReasons) string {
	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		parts = append(parts, string(reason))
	}
	return strings.Join(parts, ",")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.LockLedger = (*Repository)(nil)
var _ ports.HeightSource = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
