package model

import (
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

const (
	ProtocolParamsCollection = "protocol_params"

	// ProtocolParamsId is the _id of the singleton params document.
	ProtocolParamsId = "protocol_params"
)

type ProtocolParamsDocument struct {
	Id                      string `bson:"_id"`
	Admin                   string `bson:"admin"`
	ExchangeRateNative      uint64 `bson:"exchange_rate_native"`
	ExchangeRateReward      uint64 `bson:"exchange_rate_reward"`
	BonusRate               uint64 `bson:"bonus_rate"`
	MaxStakeCountToGetBonus uint64 `bson:"max_stake_count_to_get_bonus"`
	MinSwapAmount           uint64 `bson:"min_swap_amount"`
	MaxSwapAmount           uint64 `bson:"max_swap_amount"`
	FeeTreasuryRate         uint64 `bson:"fee_treasury_rate"`
	PurchaseEnabled         bool   `bson:"purchase_enabled"`
	RedeemEnabled           bool   `bson:"redeem_enabled"`
}

func NewProtocolParamsDocument(p types.ProtocolParams) *ProtocolParamsDocument {
	return &ProtocolParamsDocument{
		Id:                      ProtocolParamsId,
		Admin:                   p.Admin,
		ExchangeRateNative:      p.ExchangeRateNative,
		ExchangeRateReward:      p.ExchangeRateReward,
		BonusRate:               p.BonusRate,
		MaxStakeCountToGetBonus: p.MaxStakeCountToGetBonus,
		MinSwapAmount:           p.MinSwapAmount,
		MaxSwapAmount:           p.MaxSwapAmount,
		FeeTreasuryRate:         p.FeeTreasuryRate,
		PurchaseEnabled:         p.PurchaseEnabled,
		RedeemEnabled:           p.RedeemEnabled,
	}
}

func (d *ProtocolParamsDocument) ToParams() types.ProtocolParams {
	return types.ProtocolParams{
		Admin:                   d.Admin,
		ExchangeRateNative:      d.ExchangeRateNative,
		ExchangeRateReward:      d.ExchangeRateReward,
		BonusRate:               d.BonusRate,
		MaxStakeCountToGetBonus: d.MaxStakeCountToGetBonus,
		MinSwapAmount:           d.MinSwapAmount,
		MaxSwapAmount:           d.MaxSwapAmount,
		FeeTreasuryRate:         d.FeeTreasuryRate,
		PurchaseEnabled:         d.PurchaseEnabled,
		RedeemEnabled:           d.RedeemEnabled,
	}
}
