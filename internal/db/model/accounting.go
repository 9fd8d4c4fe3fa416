package model

import (
	"time"

	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

const (
	GlobalAccountingCollection = "global_accounting"

	// GlobalAccountingId is the _id of the singleton accounting document.
	GlobalAccountingId = "global_accounting"
)

// GlobalAccountingDocument is the persisted form of the protocol-wide
// aggregate. Reward indices exceed 64 bits and are stored as decimal
// strings.
type GlobalAccountingDocument struct {
	Id                        string `bson:"_id"`
	TotalStaked               uint64 `bson:"total_staked"`
	TotalStakeEvents          uint64 `bson:"total_stake_events"`
	NativeRewardIndex         string `bson:"native_reward_index"`
	RewardTokenIndex          string `bson:"reward_token_index"`
	LastObservedNativeBalance uint64 `bson:"last_observed_native_balance"`
	TotalNativeRewardsAccrued uint64 `bson:"total_native_rewards_accrued"`
	TotalNativeUsedForBuyback uint64 `bson:"total_native_used_for_buyback"`
	TotalRewardTokenAccrued   uint64 `bson:"total_reward_token_accrued"`
	TotalRewardTokenClaimed   uint64 `bson:"total_reward_token_claimed"`
	TotalRewardTokenForfeited uint64 `bson:"total_reward_token_forfeited"`
	LastUpdateTime            int64  `bson:"last_update_time"`
	LastBuybackTime           int64  `bson:"last_buyback_time"`
}

func NewGlobalAccountingDocument(g *ledger.GlobalAccounting) *GlobalAccountingDocument {
	return &GlobalAccountingDocument{
		Id:                        GlobalAccountingId,
		TotalStaked:               g.TotalStaked,
		TotalStakeEvents:          g.TotalStakeEvents,
		NativeRewardIndex:         g.NativeRewardIndex.String(),
		RewardTokenIndex:          g.RewardTokenIndex.String(),
		LastObservedNativeBalance: g.LastObservedNativeBalance,
		TotalNativeRewardsAccrued: g.TotalNativeRewardsAccrued,
		TotalNativeUsedForBuyback: g.TotalNativeUsedForBuyback,
		TotalRewardTokenAccrued:   g.TotalRewardTokenAccrued,
		TotalRewardTokenClaimed:   g.TotalRewardTokenClaimed,
		TotalRewardTokenForfeited: g.TotalRewardTokenForfeited,
		LastUpdateTime:            g.LastUpdateTime.Unix(),
		LastBuybackTime:           g.LastBuybackTime.Unix(),
	}
}

func (d *GlobalAccountingDocument) ToLedger() (*ledger.GlobalAccounting, error) {
	nativeIndex, err := ledger.ParseIndex(d.NativeRewardIndex)
	if err != nil {
		return nil, err
	}
	rewardIndex, err := ledger.ParseIndex(d.RewardTokenIndex)
	if err != nil {
		return nil, err
	}
	return &ledger.GlobalAccounting{
		TotalStaked:               d.TotalStaked,
		TotalStakeEvents:          d.TotalStakeEvents,
		NativeRewardIndex:         nativeIndex,
		RewardTokenIndex:          rewardIndex,
		LastObservedNativeBalance: d.LastObservedNativeBalance,
		TotalNativeRewardsAccrued: d.TotalNativeRewardsAccrued,
		TotalNativeUsedForBuyback: d.TotalNativeUsedForBuyback,
		TotalRewardTokenAccrued:   d.TotalRewardTokenAccrued,
		TotalRewardTokenClaimed:   d.TotalRewardTokenClaimed,
		TotalRewardTokenForfeited: d.TotalRewardTokenForfeited,
		LastUpdateTime:            time.Unix(d.LastUpdateTime, 0).UTC(),
		LastBuybackTime:           time.Unix(d.LastBuybackTime, 0).UTC(),
	}, nil
}
