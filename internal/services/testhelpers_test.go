package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Luxor-Foundation/luxor-swap/internal/clients/ammclient"
	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/curve"
	"github.com/Luxor-Foundation/luxor-swap/internal/db"
	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

const (
	testAdmin         = "admin"
	testCustodyVault  = "native-custody"
	testRewardVault   = "reward-vault"
	testTreasuryVault = "treasury-vault"
)

// fakeDb is an in-memory DbInterface for unit tests.
type fakeDb struct {
	mu         sync.Mutex
	accounting *model.GlobalAccountingDocument
	positions  map[string]*model.PositionDocument
	params     *model.ProtocolParamsDocument
}

func newFakeDb() *fakeDb {
	return &fakeDb{positions: make(map[string]*model.PositionDocument)}
}

func (f *fakeDb) Ping(ctx context.Context) error { return nil }

func (f *fakeDb) InitGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accounting != nil {
		return &db.DuplicateKeyError{Key: model.GlobalAccountingId, Message: "duplicate key"}
	}
	f.accounting = doc
	return nil
}

func (f *fakeDb) GetGlobalAccounting(ctx context.Context) (*model.GlobalAccountingDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accounting == nil {
		return nil, &db.NotFoundError{Key: model.GlobalAccountingId, Message: "not found"}
	}
	return f.accounting, nil
}

func (f *fakeDb) SaveGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accounting == nil {
		return &db.NotFoundError{Key: model.GlobalAccountingId, Message: "not found"}
	}
	f.accounting = doc
	return nil
}

func (f *fakeDb) GetPosition(ctx context.Context, owner string) (*model.PositionDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.positions[owner]
	if !ok {
		return nil, &db.NotFoundError{Key: owner, Message: "not found"}
	}
	return doc, nil
}

func (f *fakeDb) UpsertPosition(ctx context.Context, doc *model.PositionDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions[doc.Owner] = doc
	return nil
}

func (f *fakeDb) CommitOperationState(
	ctx context.Context,
	accounting *model.GlobalAccountingDocument,
	positions ...*model.PositionDocument,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounting = accounting
	for _, doc := range positions {
		f.positions[doc.Owner] = doc
	}
	return nil
}

func (f *fakeDb) InitProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.params != nil {
		return &db.DuplicateKeyError{Key: model.ProtocolParamsId, Message: "duplicate key"}
	}
	f.params = doc
	return nil
}

func (f *fakeDb) GetProtocolParams(ctx context.Context) (*model.ProtocolParamsDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.params == nil {
		return nil, &db.NotFoundError{Key: model.ProtocolParamsId, Message: "not found"}
	}
	return f.params, nil
}

func (f *fakeDb) SaveProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = doc
	return nil
}

// fakeVault is an in-memory custody service.
type fakeVault struct {
	mu          sync.Mutex
	balances    map[string]uint64
	balanceErr  error
	transferErr error
}

func newFakeVault() *fakeVault {
	return &fakeVault{balances: make(map[string]uint64)}
}

func (f *fakeVault) Balance(ctx context.Context, vaultId string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balances[vaultId], nil
}

func (f *fakeVault) Transfer(ctx context.Context, from, to string, amount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transferErr != nil {
		return f.transferErr
	}
	if f.balances[from] < amount {
		return ledger.ErrInsufficientFunds
	}
	f.balances[from] -= amount
	f.balances[to] += amount
	return nil
}

func (f *fakeVault) setBalance(vaultId string, amount uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[vaultId] = amount
}

func (f *fakeVault) balance(vaultId string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[vaultId]
}

// fakeAmm executes swaps against its own constant-product reserves and
// settles the legs through the fake vault like the real pool would.
type fakeAmm struct {
	vault        *fakeVault
	nativeRes    uint64
	rewardRes    uint64
	tradeFeeRate uint64
	swapErr      error
}

func (f *fakeAmm) Reserves(ctx context.Context) (*ammclient.Reserves, error) {
	return &ammclient.Reserves{Native: f.nativeRes, RewardToken: f.rewardRes}, nil
}

func (f *fakeAmm) Swap(ctx context.Context, amountIn, minimumOut uint64) (uint64, error) {
	if f.swapErr != nil {
		return 0, f.swapErr
	}
	result, err := curve.SwapBaseInput(amountIn, f.nativeRes, f.rewardRes, f.tradeFeeRate)
	if err != nil {
		return 0, err
	}
	if result.OutputAmount < minimumOut {
		return 0, ledger.ErrSwapFailed
	}
	f.nativeRes = result.NewInputReserve
	f.rewardRes = result.NewOutputReserve

	// native leaves custody, reward tokens land in the reward vault
	f.vault.mu.Lock()
	f.vault.balances[testCustodyVault] -= amountIn
	f.vault.balances[testRewardVault] += result.OutputAmount
	f.vault.mu.Unlock()

	return result.OutputAmount, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []types.EventType
}

func (f *fakePublisher) Publish(ctx context.Context, eventType types.EventType, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakePublisher) Shutdown() {}

func (f *fakePublisher) published() []types.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.EventType(nil), f.events...)
}

// fakeHoldings reports reward-token holdings straight from the fake vault.
type fakeHoldings struct {
	vault *fakeVault
}

func (f *fakeHoldings) Holdings(ctx context.Context, owner string) (uint64, error) {
	return f.vault.Balance(ctx, owner)
}

type testEnv struct {
	service   *Service
	db        *fakeDb
	vault     *fakeVault
	amm       *fakeAmm
	publisher *fakePublisher
}

func testConfig() *config.Config {
	return &config.Config{
		Vault: config.VaultConfig{
			Endpoint:           "http://vault.local",
			Timeout:            5 * time.Second,
			MaxRetryTimes:      1,
			RetryInterval:      time.Millisecond,
			NativeCustodyVault: testCustodyVault,
			RewardVault:        testRewardVault,
			TreasuryVault:      testTreasuryVault,
		},
		Amm: config.AmmConfig{
			Endpoint:      "http://amm.local",
			Timeout:       5 * time.Second,
			MaxRetryTimes: 1,
			RetryInterval: time.Millisecond,
			TradeFeeRate:  0,
			SlippageRate:  10_000, // 1%
		},
		Protocol: config.ProtocolConfig{
			Admin:                   testAdmin,
			ExchangeRateNative:      1000,
			ExchangeRateReward:      900,
			BonusRate:               100_000,
			MaxStakeCountToGetBonus: 5,
			MinSwapAmount:           1,
			MaxSwapAmount:           1_000_000,
			FeeTreasuryRate:         250_000,
			PurchaseEnabled:         true,
			RedeemEnabled:           true,
		},
	}
}

// newTestEnv builds a service wired to fakes with the protocol initialized.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	fdb := newFakeDb()
	vault := newFakeVault()
	amm := &fakeAmm{
		vault:     vault,
		nativeRes: 1_000_000,
		rewardRes: 1_000_000,
	}
	publisher := &fakePublisher{}
	holdings := &fakeHoldings{vault: vault}

	// reward vault funded for payouts
	vault.setBalance(testRewardVault, 1_000_000)

	service := NewService(cfg, fdb, vault, amm, holdings, publisher)
	require.NoError(t, service.InitializeProtocol(context.Background()))

	return &testEnv{
		service:   service,
		db:        fdb,
		vault:     vault,
		amm:       amm,
		publisher: publisher,
	}
}

func (e *testEnv) accounting(t *testing.T) *ledger.GlobalAccounting {
	t.Helper()

	doc, err := e.db.GetGlobalAccounting(context.Background())
	require.NoError(t, err)
	g, err := doc.ToLedger()
	require.NoError(t, err)
	return g
}

func (e *testEnv) position(t *testing.T, owner string) *ledger.UserPosition {
	t.Helper()

	doc, err := e.db.GetPosition(context.Background(), owner)
	require.NoError(t, err)
	u, err := doc.ToLedger()
	require.NoError(t, err)
	return u
}
