package types

// EmergencyWithdrawal is the privileged escape hatch, expressed as a tagged
// variant instead of an integer mode switch so an out-of-range mode cannot
// silently misroute funds. Each variant carries its own payload.
type EmergencyWithdrawal interface {
	withdrawalKind() string
}

// WithdrawRewardAssets moves reward tokens out of the reward vault.
type WithdrawRewardAssets struct {
	To     string
	Amount uint64
}

// WithdrawNativeFees moves accrued native yield out of custody without
// touching staked principal.
type WithdrawNativeFees struct {
	To     string
	Amount uint64
}

// DeactivateStake disables purchasing and redemption without moving funds.
type DeactivateStake struct{}

// WithdrawStakedNative returns staked principal to its owner, shrinking the
// owner's position and the global total together.
type WithdrawStakedNative struct {
	Owner  string
	Amount uint64
}

func (WithdrawRewardAssets) withdrawalKind() string { return "withdraw_reward_assets" }
func (WithdrawNativeFees) withdrawalKind() string   { return "withdraw_native_fees" }
func (DeactivateStake) withdrawalKind() string      { return "deactivate_stake" }
func (WithdrawStakedNative) withdrawalKind() string { return "withdraw_staked_native" }
