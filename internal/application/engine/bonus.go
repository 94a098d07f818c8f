package engine

import (
	"context"
	"fmt"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
)

var bonusDescriptor = operationDescriptor{
	endpoint:          "issue_bonus",
	transactionType:   entities.TransactionTypeBonus,
	systemAccountName: SystemBonusPool,
	dir:               systemDebitsUser,
	systemLegDescription: func(amount valueobjects.Amount, symbol string, meta map[string]string) string {
		reason := meta["reason"]
		if reason == "" {
			reason = "system grant"
		}
		return fmt.Sprintf("Bonus pool debit: %s", reason)
	},
	userLegDescription: func(amount valueobjects.Amount, symbol string, meta map[string]string) string {
		reason := meta["reason"]
		if reason == "" {
			reason = "system grant"
		}
		return fmt.Sprintf("Bonus: %s — %s %s", reason, amount.String(), symbol)
	},
	successMessage: func(amount valueobjects.Amount, symbol string) string {
		return fmt.Sprintf("Bonus of %s %s issued successfully.", amount.String(), symbol)
	},
}

// IssueBonus credits a user's wallet from the system bonus pool account.
func (e *Engine) IssueBonus(ctx context.Context, in Input) (*Result, error) {
	return e.run(ctx, bonusDescriptor, in)
}
