package engine

import (
	"context"
	"fmt"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
)

var spendDescriptor = operationDescriptor{
	endpoint:          "spend",
	transactionType:   entities.TransactionTypeSpend,
	systemAccountName: SystemRevenue,
	dir:               userDebitsSystem,
	systemLegDescription: func(amount valueobjects.Amount, symbol string, meta map[string]string) string {
		return fmt.Sprintf("Revenue credit from spend: %s", meta["item_reference"])
	},
	userLegDescription: func(amount valueobjects.Amount, symbol string, meta map[string]string) string {
		return fmt.Sprintf("Spent %s %s", amount.String(), symbol)
	},
	successMessage: func(amount valueobjects.Amount, symbol string) string {
		return fmt.Sprintf("Successfully spent %s %s.", amount.String(), symbol)
	},
}

// Spend debits a user's wallet into the system revenue account.
func (e *Engine) Spend(ctx context.Context, in Input) (*Result, error) {
	return e.run(ctx, spendDescriptor, in)
}
