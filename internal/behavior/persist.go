package behavior

import (
	"context"
	"time"
)

// CreditTxType classifies a credit ledger audit entry.
type CreditTxType string

const (
	CreditEarn     CreditTxType = "earn"
	CreditSpend    CreditTxType = "spend"
	CreditDeclined CreditTxType = "declined"
)

// CreditTransaction is the audit record written for every ledger call.
// Amount is signed: positive for earns, negative for spends, and the
// attempted (negative) amount for declined spends, which leave the
// balance untouched.
type CreditTransaction struct {
	Amount       int
	Type         CreditTxType
	Reason       string
	BalanceAfter int
	CreatedAt    time.Time
}

// Persister is the durable storage the engine writes through. A nil
// Persister keeps the engine fully functional in memory; write errors
// are logged and swallowed so a storage fault never reaches a caller.
type Persister interface {
	// SaveSnapshot durably records the full state after a mutation.
	SaveSnapshot(ctx context.Context, st State) error

	// LatestSnapshot returns the most recent persisted state, or nil
	// when nothing has been saved yet.
	LatestSnapshot(ctx context.Context) (*State, error)

	// AppendCreditTransaction records a ledger audit entry.
	AppendCreditTransaction(ctx context.Context, tx CreditTransaction) error
}
