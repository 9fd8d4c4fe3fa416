package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

func (s *Server) healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type purchaseRequest struct {
	Purchaser    string `json:"purchaser"`
	NativeAmount uint64 `json:"native_amount"`
}

type purchaseResponse struct {
	Purchaser    string `json:"purchaser"`
	NativeAmount uint64 `json:"native_amount"`
	RewardAmount uint64 `json:"reward_amount"`
	BonusApplied bool   `json:"bonus_applied"`
}

func (s *Server) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Purchaser == "" {
		writeError(w, r, http.StatusBadRequest, "purchaser is required")
		return
	}

	quote, err := s.service.Purchase(r.Context(), req.Purchaser, req.NativeAmount)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, purchaseResponse{
		Purchaser:    req.Purchaser,
		NativeAmount: quote.NativeAmount,
		RewardAmount: quote.RewardAmount,
		BonusApplied: quote.BonusApplied,
	})
}

type redeemRequest struct {
	Collector string `json:"collector"`
}

type redeemResponse struct {
	Collector string `json:"collector"`
	Claimed   uint64 `json:"claimed"`
	Forfeited uint64 `json:"forfeited"`
}

func (s *Server) redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Collector == "" {
		writeError(w, r, http.StatusBadRequest, "collector is required")
		return
	}

	result, err := s.service.Redeem(r.Context(), req.Collector)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, redeemResponse{
		Collector: req.Collector,
		Claimed:   result.Claimable,
		Forfeited: result.Forfeited,
	})
}

type buybackResponse struct {
	NativeUsed     uint64 `json:"native_used"`
	RewardTokenOut uint64 `json:"reward_token_out"`
	FeeToTreasury  uint64 `json:"fee_to_treasury"`
	ToRewardVault  uint64 `json:"to_reward_vault"`
}

func (s *Server) buyback(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Buyback(r.Context())
	if err != nil {
		writeOperationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, buybackResponse{
		NativeUsed:     result.NativeUsed,
		RewardTokenOut: result.RewardTokenOut,
		FeeToTreasury:  result.FeeToTreasury,
		ToRewardVault:  result.ToRewardVault,
	})
}

func (s *Server) position(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "owner is required")
		return
	}

	view, err := s.service.Position(r.Context(), owner)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	rewardTokenOut, err := strconv.ParseUint(r.URL.Query().Get("reward_token_out"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reward_token_out must be a positive integer")
		return
	}

	view, err := s.service.QuoteExactOutput(r.Context(), rewardTokenOut)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

type manualPurchaseRequest struct {
	Caller       string `json:"caller"`
	Purchaser    string `json:"purchaser"`
	NativeAmount uint64 `json:"native_amount"`
	RewardAmount uint64 `json:"reward_amount"`
}

func (s *Server) manualPurchase(w http.ResponseWriter, r *http.Request) {
	var req manualPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Purchaser == "" {
		writeError(w, r, http.StatusBadRequest, "purchaser is required")
		return
	}

	err := s.service.ManualPurchase(r.Context(), req.Caller, req.Purchaser, req.NativeAmount, req.RewardAmount)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "recorded"})
}

type updateConfigRequest struct {
	Caller          string  `json:"caller"`
	Admin           *string `json:"admin,omitempty"`
	MinSwapAmount   *uint64 `json:"min_swap_amount,omitempty"`
	MaxSwapAmount   *uint64 `json:"max_swap_amount,omitempty"`
	FeeTreasuryRate *uint64 `json:"fee_treasury_rate,omitempty"`
	PurchaseEnabled *bool   `json:"purchase_enabled,omitempty"`
	RedeemEnabled   *bool   `json:"redeem_enabled,omitempty"`
}

func (s *Server) updateConfig(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	update := types.ProtocolParamsUpdate{
		Admin:           req.Admin,
		MinSwapAmount:   req.MinSwapAmount,
		MaxSwapAmount:   req.MaxSwapAmount,
		FeeTreasuryRate: req.FeeTreasuryRate,
		PurchaseEnabled: req.PurchaseEnabled,
		RedeemEnabled:   req.RedeemEnabled,
	}
	if err := s.service.UpdateConfig(r.Context(), req.Caller, update); err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

type blacklistRequest struct {
	Caller string `json:"caller"`
	User   string `json:"user"`
}

type blacklistResponse struct {
	User              string `json:"user"`
	StakeReassigned   uint64 `json:"stake_reassigned"`
	PendingReassigned uint64 `json:"pending_reassigned"`
}

func (s *Server) blacklist(w http.ResponseWriter, r *http.Request) {
	var req blacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.User == "" {
		writeError(w, r, http.StatusBadRequest, "user is required")
		return
	}

	result, err := s.service.Blacklist(r.Context(), req.Caller, req.User)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, blacklistResponse{
		User:              req.User,
		StakeReassigned:   result.StakeReassigned,
		PendingReassigned: result.PendingReassigned,
	})
}

type emergencyWithdrawRequest struct {
	Caller string `json:"caller"`
	Kind   string `json:"kind"`
	To     string `json:"to,omitempty"`
	Owner  string `json:"owner,omitempty"`
	Amount uint64 `json:"amount,omitempty"`
}

func (s *Server) emergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	var req emergencyWithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	withdrawal, err := withdrawalFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.EmergencyWithdraw(r.Context(), req.Caller, withdrawal); err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "withdrawn"})
}

func withdrawalFromRequest(req emergencyWithdrawRequest) (types.EmergencyWithdrawal, error) {
	switch req.Kind {
	case "withdraw_reward_assets":
		return types.WithdrawRewardAssets{To: req.To, Amount: req.Amount}, nil
	case "withdraw_native_fees":
		return types.WithdrawNativeFees{To: req.To, Amount: req.Amount}, nil
	case "deactivate_stake":
		return types.DeactivateStake{}, nil
	case "withdraw_staked_native":
		return types.WithdrawStakedNative{Owner: req.Owner, Amount: req.Amount}, nil
	default:
		return nil, fmt.Errorf("unknown withdrawal kind %q", req.Kind)
	}
}
