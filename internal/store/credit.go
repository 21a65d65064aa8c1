package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/engage/internal/behavior"
)

// CreditRecord is one row of the credit transaction audit log.
type CreditRecord struct {
	ID           int
	Amount       int
	Type         behavior.CreditTxType
	Reason       string
	BalanceAfter int
	CreatedAt    time.Time
}

// AppendCreditTransaction records a ledger audit entry.
func (r *BehaviorRepo) AppendCreditTransaction(ctx context.Context, tx behavior.CreditTransaction) error {
	created := tx.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credit_transactions (amount, type, reason, balance_after, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		tx.Amount, string(tx.Type), tx.Reason, tx.BalanceAfter,
		created.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append credit transaction: %w", err)
	}
	return nil
}

// RecentCreditTransactions returns up to limit audit entries, newest
// first.
func (r *BehaviorRepo) RecentCreditTransactions(ctx context.Context, limit int) ([]CreditRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, type, reason, balance_after, created_at
		FROM credit_transactions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query credit transactions: %w", err)
	}
	defer rows.Close()

	var out []CreditRecord
	for rows.Next() {
		var rec CreditRecord
		var txType, created string
		if err := rows.Scan(&rec.ID, &rec.Amount, &txType, &rec.Reason, &rec.BalanceAfter, &created); err != nil {
			return nil, fmt.Errorf("scan credit transaction: %w", err)
		}
		rec.Type = behavior.CreditTxType(txType)
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credit transactions: %w", err)
	}
	return out, nil
}
