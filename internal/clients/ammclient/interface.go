package ammclient

import "context"

type Reserves struct {
	// Native holds the native-asset side of the pool.
	Native uint64
	// RewardToken holds the reward-token side of the pool.
	RewardToken uint64
}

//go:generate mockery --name=AmmInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_amm_client.go
type AmmInterface interface {
	// Reserves returns the current pool reserves.
	Reserves(ctx context.Context) (*Reserves, error)
	// Swap trades amountIn of the native asset for reward tokens. The trade
	// fails if the executed output lands below minimumOut.
	Swap(ctx context.Context, amountIn, minimumOut uint64) (uint64, error)
}
