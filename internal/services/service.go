package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Luxor-Foundation/luxor-swap/internal/clients/ammclient"
	"github.com/Luxor-Foundation/luxor-swap/internal/clients/vaultclient"
	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/db"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
	"github.com/Luxor-Foundation/luxor-swap/internal/queue"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
	"github.com/Luxor-Foundation/luxor-swap/internal/utils/poller"
)

type Service struct {
	cfg        *config.Config
	db         db.DbInterface
	vault      vaultclient.VaultInterface
	amm        ammclient.AmmInterface
	holdings   HoldingsOracle
	events     queue.EventPublisher
	redemption *ledger.RedemptionEngine

	buybackPoller *poller.Poller

	// mu serializes ledger operations: each one loads state, mutates it and
	// commits it as a unit, so two interleaved operations would clobber each
	// other's view.
	mu sync.Mutex
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	vault vaultclient.VaultInterface,
	amm ammclient.AmmInterface,
	holdings HoldingsOracle,
	events queue.EventPublisher,
) *Service {
	return &Service{
		cfg:        cfg,
		db:         db,
		vault:      vault,
		amm:        amm,
		holdings:   holdings,
		events:     events,
		redemption: ledger.NewRedemptionEngine(),
	}
}

// loadParams fetches the current protocol parameters.
func (s *Service) loadParams(ctx context.Context) (types.ProtocolParams, error) {
	doc, err := s.db.GetProtocolParams(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return types.ProtocolParams{}, ledger.ErrNotInitialized
		}
		return types.ProtocolParams{}, fmt.Errorf("failed to load protocol params: %w", err)
	}
	return doc.ToParams(), nil
}

// loadAccounting fetches the global accounting aggregate.
func (s *Service) loadAccounting(ctx context.Context) (*ledger.GlobalAccounting, error) {
	doc, err := s.db.GetGlobalAccounting(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, ledger.ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to load global accounting: %w", err)
	}
	return doc.ToLedger()
}

// loadPosition fetches the position for owner, or a fresh zero position if
// the owner has never purchased.
func (s *Service) loadPosition(ctx context.Context, owner string) (*ledger.UserPosition, error) {
	doc, err := s.db.GetPosition(ctx, owner)
	if err != nil {
		if db.IsNotFoundError(err) {
			return ledger.NewUserPosition(owner), nil
		}
		return nil, fmt.Errorf("failed to load position for %s: %w", owner, err)
	}
	return doc.ToLedger()
}

func pricingParamsOf(p types.ProtocolParams) ledger.PricingParams {
	return ledger.PricingParams{
		ExchangeRateNative:      p.ExchangeRateNative,
		ExchangeRateReward:      p.ExchangeRateReward,
		BonusRate:               p.BonusRate,
		MaxStakeCountToGetBonus: p.MaxStakeCountToGetBonus,
		MinSwapAmount:           p.MinSwapAmount,
		MaxSwapAmount:           p.MaxSwapAmount,
	}
}

// runOperation wraps a ledger operation with the service mutex and the
// operation duration metric.
func (s *Service) runOperation(operation string, f func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordOperationDuration(duration, operation, err != nil)
	return err
}
