package memory

import (
	"context"
	"errors"
	"sync"

	"govledger/contexts/governance/voting-engine/domain/entities"
	"govledger/contexts/governance/voting-engine/ports"
)

var errLedgerLockMissing = errors.New("ledger lock not found")

type ledgerLockKey struct {
	lockID  string
	account string
}

type ledgerLock struct {
	amount      uint64
	maxLifetime uint64
	reasons     entities.WithdrawReasons
}

// Ledger is the in-process stand-in for the chain's fungible-token module:
// free balances plus named locks. Locked amounts stay inside the balance;
// FreeBalance reports the unlocked remainder.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]uint64
	locks    map[ledgerLockKey]ledgerLock
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]uint64),
		locks:    make(map[ledgerLockKey]ledgerLock),
	}
}

// SetBalance seeds an account's total balance. Wiring/test hook.
func (l *Ledger) SetBalance(account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = amount
}

func (l *Ledger) FreeBalance(_ context.Context, account string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := l.balances[account]
	var locked uint64
	for key, lock := range l.locks {
		if key.account != account {
			continue
		}
		// Overlapping locks share balance; the largest one bounds the free
		// remainder.
		if lock.amount > locked {
			locked = lock.amount
		}
	}
	if locked >= total {
		return 0, nil
	}
	return total - locked, nil
}

func (l *Ledger) SetLock(_ context.Context, lockID string, account string, amount uint64, maxLifetime uint64, reasons entities.WithdrawReasons) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks[ledgerLockKey{lockID: lockID, account: account}] = ledgerLock{
		amount:      amount,
		maxLifetime: maxLifetime,
		reasons:     reasons,
	}
	return nil
}

func (l *Ledger) RemoveLock(_ context.Context, lockID string, account string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerLockKey{lockID: lockID, account: account}
	if _, ok := l.locks[key]; !ok {
		return errLedgerLockMissing
	}
	delete(l.locks, key)
	return nil
}

// HasLock reports whether a named lock is in force. Test hook.
func (l *Ledger) HasLock(lockID string, account string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.locks[ledgerLockKey{lockID: lockID, account: account}]
	return ok
}

var _ ports.LockLedger = (*Ledger)(nil)
