package votingengine

import (
	"log/slog"

	"govledger/contexts/governance/voting-engine/adapters/hashing"
	httpadapter "govledger/contexts/governance/voting-engine/adapters/http"
	"govledger/contexts/governance/voting-engine/adapters/memory"
	"govledger/contexts/governance/voting-engine/application/commands"
	"govledger/contexts/governance/voting-engine/application/queries"
	"govledger/contexts/governance/voting-engine/ports"
)

// DefaultLockPeriod is the fixed maximum lifetime, in heights, stamped on
// every governance ledger lock.
const DefaultLockPeriod = 250

type Module struct {
	Handler httpadapter.Handler

	// In-memory wiring hooks; nil when backed by postgres.
	Store   *memory.Store
	Ledger  *memory.Ledger
	Heights *memory.HeightCounter
}

type Dependencies struct {
	Votes      ports.VoteRepository
	Ledger     ports.LockLedger
	Heights    ports.HeightSource
	Hasher     ports.PayloadHasher
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	LockPeriod uint64
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	lockPeriod := deps.LockPeriod
	if lockPeriod == 0 {
		lockPeriod = DefaultLockPeriod
	}
	lifecycle := commands.LifecycleUseCase{
		Votes:   deps.Votes,
		Heights: deps.Heights,
		Hasher:  deps.Hasher,
		Outbox:  deps.Outbox,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	ballots := commands.BallotUseCase{
		Votes:      deps.Votes,
		Ledger:     deps.Ledger,
		Heights:    deps.Heights,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		LockPeriod: lockPeriod,
		Logger:     deps.Logger,
	}
	withdrawals := commands.WithdrawalUseCase{
		Votes:   deps.Votes,
		Ledger:  deps.Ledger,
		Heights: deps.Heights,
		Outbox:  deps.Outbox,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	voteQueries := queries.VoteQueries{
		Votes: deps.Votes,
	}
	return Module{
		Handler: httpadapter.Handler{
			Lifecycle:   lifecycle,
			Ballots:     ballots,
			Withdrawals: withdrawals,
			Queries:     voteQueries,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires the engine against the in-process store, ledger,
// and height counter. Tests and local runs drive heights/balances through
// the exposed hooks.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	ledger := memory.NewLedger()
	heights := memory.NewHeightCounter(0)
	module := NewModule(Dependencies{
		Votes:   store,
		Ledger:  ledger,
		Heights: heights,
		Hasher:  hashing.Keccak{},
		Outbox:  store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	module.Ledger = ledger
	module.Heights = heights
	return module
}
