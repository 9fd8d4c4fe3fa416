package types

// ProtocolParams are the admin-tunable protocol parameters. They are seeded
// at initialization and updated only through the config-update operation.
type ProtocolParams struct {
	Admin                   string
	ExchangeRateNative      uint64
	ExchangeRateReward      uint64
	BonusRate               uint64
	MaxStakeCountToGetBonus uint64
	MinSwapAmount           uint64
	MaxSwapAmount           uint64
	FeeTreasuryRate         uint64
	PurchaseEnabled         bool
	RedeemEnabled           bool
}

// ProtocolParamsUpdate is a typed partial update; nil fields are left
// untouched.
type ProtocolParamsUpdate struct {
	Admin           *string
	MinSwapAmount   *uint64
	MaxSwapAmount   *uint64
	FeeTreasuryRate *uint64
	PurchaseEnabled *bool
	RedeemEnabled   *bool
}

// Apply returns a copy of p with the update applied.
func (u ProtocolParamsUpdate) Apply(p ProtocolParams) ProtocolParams {
	if u.Admin != nil {
		p.Admin = *u.Admin
	}
	if u.MinSwapAmount != nil {
		p.MinSwapAmount = *u.MinSwapAmount
	}
	if u.MaxSwapAmount != nil {
		p.MaxSwapAmount = *u.MaxSwapAmount
	}
	if u.FeeTreasuryRate != nil {
		p.FeeTreasuryRate = *u.FeeTreasuryRate
	}
	if u.PurchaseEnabled != nil {
		p.PurchaseEnabled = *u.PurchaseEnabled
	}
	if u.RedeemEnabled != nil {
		p.RedeemEnabled = *u.RedeemEnabled
	}
	return p
}
