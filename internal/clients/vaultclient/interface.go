package vaultclient

import "context"

//go:generate mockery --name=VaultInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_vault_client.go
type VaultInterface interface {
	// Balance returns the current balance of the vault in base units.
	Balance(ctx context.Context, vaultId string) (uint64, error)
	// Transfer moves amount between two vaults held by the custody service.
	Transfer(ctx context.Context, from, to string, amount uint64) error
}
