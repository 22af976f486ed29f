package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"govledger/contexts/governance/voting-engine/domain/entities"
	domainerrors "govledger/contexts/governance/voting-engine/domain/errors"
	"govledger/contexts/governance/voting-engine/ports"

	"github.com/google/uuid"
)

type ballotKey struct {
	voteID uint64
	side   entities.BallotSide
}

type lockKey struct {
	voteID uint64
	voter  string
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store keeps the whole governance state surface in process. The host
// serializes operations, the mutex only guards incidental concurrent reads.
type Store struct {
	mu sync.RWMutex

	voteCount     uint64
	votes         map[uint64]entities.VoteRecord
	createdCounts map[string]uint64
	creatorIndex  map[string][]uint64
	digests       map[uint64]string
	ballots       map[ballotKey][]string
	locks         map[lockKey]entities.LockInfo
	tallies       map[uint64]entities.TallyResult

	outboxOrder []string
	outbox      map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		votes:         make(map[uint64]entities.VoteRecord),
		createdCounts: make(map[string]uint64),
		creatorIndex:  make(map[string][]uint64),
		digests:       make(map[uint64]string),
		ballots:       make(map[ballotKey][]string),
		locks:         make(map[lockKey]entities.LockInfo),
		tallies:       make(map[uint64]entities.TallyResult),
		outbox:        make(map[string]outboxRecord),
	}
}

func (s *Store) VoteCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voteCount, nil
}

// SetVoteCount force-sets the counter. Test hook for overflow scenarios.
func (s *Store) SetVoteCount(count uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voteCount = count
}

func (s *Store) CreatedCount(_ context.Context, creator string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdCounts[creator], nil
}

func (s *Store) HasVote(_ context.Context, voteID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.votes[voteID]
	return ok, nil
}

func (s *Store) GetVote(_ context.Context, voteID uint64) (entities.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[voteID]
	if !ok {
		return entities.VoteRecord{}, domainerrors.ErrVoteNotFound
	}
	return vote, nil
}

func (s *Store) InsertVote(_ context.Context, vote entities.VoteRecord, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votes[vote.VoteID]; ok {
		return domainerrors.ErrVoteAlreadyExists
	}
	s.votes[vote.VoteID] = vote
	s.digests[vote.VoteID] = digest
	s.voteCount = vote.VoteID
	s.createdCounts[vote.Creator]++
	s.creatorIndex[vote.Creator] = append(s.creatorIndex[vote.Creator], vote.VoteID)
	return nil
}

func (s *Store) SaveVote(_ context.Context, vote entities.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votes[vote.VoteID]; !ok {
		return domainerrors.ErrVoteNotFound
	}
	s.votes[vote.VoteID] = vote
	return nil
}

func (s *Store) ListVotesByCreator(_ context.Context, creator string) ([]entities.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.creatorIndex[creator]
	items := make([]entities.VoteRecord, 0, len(ids))
	for _, id := range ids {
		if vote, ok := s.votes[id]; ok {
			items = append(items, vote)
		}
	}
	return items, nil
}

func (s *Store) VoteDigest(_ context.Context, voteID uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	digest, ok := s.digests[voteID]
	if !ok {
		return "", domainerrors.ErrVoteNotFound
	}
	return digest, nil
}

func (s *Store) VotedAccounts(_ context.Context, voteID uint64, side entities.BallotSide) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := s.ballots[ballotKey{voteID: voteID, side: side}]
	out := make([]string, len(accounts))
	copy(out, accounts)
	return out, nil
}

func (s *Store) SaveVotedAccounts(_ context.Context, voteID uint64, side entities.BallotSide, accounts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(accounts))
	copy(stored, accounts)
	s.ballots[ballotKey{voteID: voteID, side: side}] = stored
	return nil
}

func (s *Store) GetLock(_ context.Context, voteID uint64, voter string) (entities.LockInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lock, ok := s.locks[lockKey{voteID: voteID, voter: voter}]
	return lock, ok, nil
}

func (s *Store) SaveLock(_ context.Context, lock entities.LockInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := lockKey{voteID: lock.VoteID, voter: lock.Voter}
	if _, ok := s.locks[key]; ok {
		return domainerrors.ErrDuplicateLock
	}
	s.locks[key] = lock
	return nil
}

func (s *Store) DeleteLock(_ context.Context, voteID uint64, voter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := lockKey{voteID: voteID, voter: voter}
	if _, ok := s.locks[key]; !ok {
		return domainerrors.ErrLockNotFound
	}
	delete(s.locks, key)
	return nil
}

func (s *Store) SaveTallyResult(_ context.Context, result entities.TallyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tallies[result.VoteID] = result
	return nil
}

func (s *Store) GetTallyResult(_ context.Context, voteID uint64) (entities.TallyResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.tallies[voteID]
	return result, ok, nil
}

func (s *Store) AppendOutbox(_ context.Context, event ports.EventEnvelope) error {
	payload, err := marshalEnvelope(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := event.EventID
	if id == "" {
		id = uuid.NewString()
	}
	s.outbox[id] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     id,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			CreatedAt:    time.Now().UTC(),
		},
	}
	s.outboxOrder = append(s.outboxOrder, id)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, limit)
	for _, id := range s.outboxOrder {
		record, ok := s.outbox[id]
		if !ok || record.published {
			continue
		}
		items = append(items, record.message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[outboxID] = record
	return nil
}

func marshalEnvelope(event ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(event)
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
