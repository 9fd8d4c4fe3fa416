package services

import (
	"context"

	"github.com/Luxor-Foundation/luxor-swap/internal/clients/vaultclient"
)

// HoldingsOracle reports how many reward tokens an owner currently holds.
// Redemption compares this against the owner's recorded baseline to decide
// forfeiture, so the source of truth for balances stays pluggable.
//
//go:generate mockery --name=HoldingsOracle --output=../../tests/mocks --outpkg=mocks --filename=mock_holdings_oracle.go
type HoldingsOracle interface {
	Holdings(ctx context.Context, owner string) (uint64, error)
}

// VaultHoldingsOracle resolves holdings through the custody service, using
// the owner id as the account id.
type VaultHoldingsOracle struct {
	vault vaultclient.VaultInterface
}

func NewVaultHoldingsOracle(vault vaultclient.VaultInterface) *VaultHoldingsOracle {
	return &VaultHoldingsOracle{vault: vault}
}

func (o *VaultHoldingsOracle) Holdings(ctx context.Context, owner string) (uint64, error) {
	return o.vault.Balance(ctx, owner)
}
