package model

import (
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

const PositionCollection = "positions"

// PositionDocument is a participant's stake record, keyed by owner.
type PositionDocument struct {
	Owner                 string `bson:"_id"`
	StakedAmount          uint64 `bson:"staked_amount"`
	RewardTokenCheckpoint string `bson:"reward_token_checkpoint"`
	PendingRewardToken    uint64 `bson:"pending_reward_token"`
	BaseHoldings          uint64 `bson:"base_holdings"`
	TotalClaimed          uint64 `bson:"total_claimed"`
	TotalForfeited        uint64 `bson:"total_forfeited"`
}

func NewPositionDocument(u *ledger.UserPosition) *PositionDocument {
	return &PositionDocument{
		Owner:                 u.Owner,
		StakedAmount:          u.StakedAmount,
		RewardTokenCheckpoint: u.RewardTokenCheckpoint.String(),
		PendingRewardToken:    u.PendingRewardToken,
		BaseHoldings:          u.BaseHoldings,
		TotalClaimed:          u.TotalClaimed,
		TotalForfeited:        u.TotalForfeited,
	}
}

func (d *PositionDocument) ToLedger() (*ledger.UserPosition, error) {
	checkpoint, err := ledger.ParseIndex(d.RewardTokenCheckpoint)
	if err != nil {
		return nil, err
	}
	return &ledger.UserPosition{
		Owner:                 d.Owner,
		StakedAmount:          d.StakedAmount,
		RewardTokenCheckpoint: checkpoint,
		PendingRewardToken:    d.PendingRewardToken,
		BaseHoldings:          d.BaseHoldings,
		TotalClaimed:          d.TotalClaimed,
		TotalForfeited:        d.TotalForfeited,
	}, nil
}
