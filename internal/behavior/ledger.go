package behavior

import (
	"context"
	"fmt"

	"github.com/abhisek/engage/internal/notify"
)

// AddCredits deposits credits. Always succeeds; pushes a credit
// notification and appends an audit entry.
func (e *Engine) AddCredits(amount int, reason string) {
	if amount < 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state.Clone()
	st.Credits += amount
	e.audit(CreditTransaction{
		Amount:       amount,
		Type:         CreditEarn,
		Reason:       reason,
		BalanceAfter: st.Credits,
		CreatedAt:    e.now(),
	})
	e.push(notify.Notification{
		Category: notify.CategoryCredit,
		Title:    "Credits Earned!",
		Message:  reason,
		Reward:   &notify.Reward{Kind: notify.RewardCredits, Amount: amount},
	})
	e.replace(st)
}

// DeductCredits spends credits if the balance covers the amount. This is
// the only path that decreases the balance, so credits can never go
// negative. On insufficient funds the state is untouched, an
// "Insufficient Credits" notification is pushed, and false is returned.
func (e *Engine) DeductCredits(amount int, reason string) bool {
	if amount < 0 {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Credits < amount {
		e.audit(CreditTransaction{
			Amount:       -amount,
			Type:         CreditDeclined,
			Reason:       reason,
			BalanceAfter: e.state.Credits,
			CreatedAt:    e.now(),
		})
		e.push(notify.Notification{
			Category: notify.CategoryCredit,
			Title:    "Insufficient Credits",
			Message:  fmt.Sprintf("You need %d credits for %s", amount, reason),
		})
		return false
	}

	st := e.state.Clone()
	st.Credits -= amount
	e.audit(CreditTransaction{
		Amount:       -amount,
		Type:         CreditSpend,
		Reason:       reason,
		BalanceAfter: st.Credits,
		CreatedAt:    e.now(),
	})
	e.push(notify.Notification{
		Category: notify.CategoryCredit,
		Title:    "Credits Spent",
		Message:  fmt.Sprintf("%d credits on %s", amount, reason),
	})
	e.replace(st)
	return true
}

// audit appends a ledger entry. Same failure contract as replace: log
// and keep going. Callers hold e.mu.
func (e *Engine) audit(tx CreditTransaction) {
	if e.persister == nil {
		return
	}
	if err := e.persister.AppendCreditTransaction(context.Background(), tx); err != nil {
		e.log.Error().Err(err).Str("type", string(tx.Type)).Msg("append credit transaction")
	}
}
