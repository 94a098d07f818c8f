package engine

import (
	"context"
	"fmt"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
)

var topUpDescriptor = operationDescriptor{
	endpoint:          "top_up",
	transactionType:   entities.TransactionTypeTopUp,
	systemAccountName: SystemTreasury,
	dir:               systemDebitsUser,
	systemLegDescription: func(amount valueobjects.Amount, symbol string, meta map[string]string) string {
		return fmt.Sprintf("Treasury debit for top-up: %s %s", amount.String(), symbol)
	},
	userLegDescription: func(amount valueobjects.Amount, symbol string, meta map[string]string) string {
		return fmt.Sprintf("Top-up of %s %s", amount.String(), symbol)
	},
	successMessage: func(amount valueobjects.Amount, symbol string) string {
		return fmt.Sprintf("Successfully credited %s %s to your wallet.", amount.String(), symbol)
	},
}

// TopUp credits a user's wallet from the system treasury account.
func (e *Engine) TopUp(ctx context.Context, in Input) (*Result, error) {
	return e.run(ctx, topUpDescriptor, in)
}
