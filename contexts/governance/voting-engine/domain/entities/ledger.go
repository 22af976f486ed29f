package entities

// WithdrawReason names a class of balance withdrawal the ledger can gate.
type WithdrawReason string

const (
	WithdrawReasonTransfer       WithdrawReason = "transfer"
	WithdrawReasonReserve        WithdrawReason = "reserve"
	WithdrawReasonTransactionFee WithdrawReason = "transaction_fee"
	WithdrawReasonTip            WithdrawReason = "tip"
)

// WithdrawReasons is the set of withdrawal classes a lock applies to.
// A class outside the set stays debitable while the lock is in force.
type WithdrawReasons []WithdrawReason

var allWithdrawReasons = []WithdrawReason{
	WithdrawReasonTransfer,
	WithdrawReasonReserve,
	WithdrawReasonTransactionFee,
	WithdrawReasonTip,
}

// WithdrawReasonsExcept returns every withdraw reason except the given ones.
// Governance locks use this to keep fee payment possible while the deposit
// is locked.
func WithdrawReasonsExcept(excluded ...WithdrawReason) WithdrawReasons {
	out := make(WithdrawReasons, 0, len(allWithdrawReasons))
	for _, reason := range allWithdrawReasons {
		skip := false
		for _, ex := range excluded {
			if reason == ex {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, reason)
		}
	}
	return out
}

// Covers reports whether the set blocks the given withdrawal class.
func (r WithdrawReasons) Covers(reason WithdrawReason) bool {
	for _, candidate := range r {
		if candidate == reason {
			return true
		}
	}
	return false
}
