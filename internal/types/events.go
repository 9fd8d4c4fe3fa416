package types

// EventType identifies a protocol event published to the event sink after a
// successful operation.
type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventInitialized      EventType = "luxorswap.v1.Initialized"
	EventConfigUpdated    EventType = "luxorswap.v1.ConfigUpdated"
	EventPurchased        EventType = "luxorswap.v1.Purchased"
	EventManualPurchased  EventType = "luxorswap.v1.ManualPurchased"
	EventBuybackExecuted  EventType = "luxorswap.v1.BuybackExecuted"
	EventRewardsCollected EventType = "luxorswap.v1.RewardsCollected"
	EventUserBlacklisted  EventType = "luxorswap.v1.UserBlacklisted"
)

// InitializedEvent captures the protocol parameters at genesis so indexers
// can cache settings without re-reading state.
type InitializedEvent struct {
	Admin                   string `json:"admin"`
	BonusRate               uint64 `json:"bonus_rate"`
	MaxStakeCountToGetBonus uint64 `json:"max_stake_count_to_get_bonus"`
	MinSwapAmount           uint64 `json:"min_swap_amount"`
	MaxSwapAmount           uint64 `json:"max_swap_amount"`
	FeeTreasuryRate         uint64 `json:"fee_treasury_rate"`
	PurchaseEnabled         bool   `json:"purchase_enabled"`
	RedeemEnabled           bool   `json:"redeem_enabled"`
}

// ConfigUpdatedEvent is emitted whenever protocol parameters change.
type ConfigUpdatedEvent struct {
	Admin           string `json:"admin"`
	MinSwapAmount   uint64 `json:"min_swap_amount"`
	MaxSwapAmount   uint64 `json:"max_swap_amount"`
	FeeTreasuryRate uint64 `json:"fee_treasury_rate"`
	PurchaseEnabled bool   `json:"purchase_enabled"`
	RedeemEnabled   bool   `json:"redeem_enabled"`
}

// PurchasedEvent records the exact native paid and reward tokens received.
type PurchasedEvent struct {
	Purchaser    string `json:"purchaser"`
	NativeAmount uint64 `json:"native_amount"`
	RewardAmount uint64 `json:"reward_amount"`
	BonusApplied bool   `json:"bonus_applied"`
}

// ManualPurchasedEvent records an admin-recorded purchase priced externally.
type ManualPurchasedEvent struct {
	Purchaser    string `json:"purchaser"`
	NativeAmount uint64 `json:"native_amount"`
	RewardAmount uint64 `json:"reward_amount"`
}

// BuybackExecutedEvent shows native consumed, reward tokens acquired and the
// treasury fee split of a buyback round.
type BuybackExecutedEvent struct {
	NativeUsed     uint64 `json:"native_used"`
	RewardTokenOut uint64 `json:"reward_token_out"`
	FeeToTreasury  uint64 `json:"fee_to_treasury"`
	ToRewardVault  uint64 `json:"to_reward_vault"`
}

// RewardsCollectedEvent includes both the payout and any forfeiture applied
// because holdings fell below the recorded baseline.
type RewardsCollectedEvent struct {
	Collector string `json:"collector"`
	Claimed   uint64 `json:"claimed"`
	Forfeited uint64 `json:"forfeited"`
}

// UserBlacklistedEvent records a forced removal and what moved to the admin
// position.
type UserBlacklistedEvent struct {
	User              string `json:"user"`
	StakeReassigned   uint64 `json:"stake_reassigned"`
	PendingReassigned uint64 `json:"pending_reassigned"`
}
