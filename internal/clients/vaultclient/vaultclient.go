package vaultclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/clients/client"
	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/utils"
)

type VaultClient struct {
	httpClient *http.Client
	cfg        *config.VaultConfig
}

func NewVaultClient(cfg *config.VaultConfig) (*VaultClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("vault config is required")
	}

	return &VaultClient{
		httpClient: &http.Client{},
		cfg:        cfg,
	}, nil
}

func (c *VaultClient) GetBaseURL() string {
	return c.cfg.Endpoint
}

func (c *VaultClient) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *VaultClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *VaultClient) Balance(ctx context.Context, vaultId string) (uint64, error) {
	type empty struct{}
	type balanceResponse struct {
		VaultId string `json:"vault_id"`
		Balance uint64 `json:"balance"`
	}

	callForBalance := func() (uint64, error) {
		path := fmt.Sprintf("/v1/vaults/%s/balance", vaultId)

		opts := &client.HttpClientOptions{
			Path:         path,
			TemplatePath: "/v1/vaults/{id}/balance",
		}

		resp, err := client.SendRequest[empty, balanceResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return 0, err
		}

		return resp.Balance, nil
	}

	balance, err := clientCallWithRetry(ctx, callForBalance, c.cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of vault %s: %w", vaultId, err)
	}

	return balance, nil
}

func (c *VaultClient) Transfer(ctx context.Context, from, to string, amount uint64) error {
	type transferRequest struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount uint64 `json:"amount"`
	}
	type transferResponse struct {
		TransferId string `json:"transfer_id"`
	}

	callForTransfer := func() (string, error) {
		opts := &client.HttpClientOptions{
			Path:         "/v1/transfers",
			TemplatePath: "/v1/transfers",
		}

		req := &transferRequest{From: from, To: to, Amount: amount}
		resp, err := client.SendRequest[transferRequest, transferResponse](ctx, c, http.MethodPost, opts, req)
		if err != nil {
			var errResp *client.ErrorResponse
			if errors.As(err, &errResp) && errResp.StatusCode == http.StatusUnprocessableEntity {
				return "", ledger.ErrInsufficientFunds
			}
			return "", err
		}

		return resp.TransferId, nil
	}

	transferId, err := clientCallWithRetry(ctx, callForTransfer, c.cfg)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return err
		}
		return fmt.Errorf("failed to transfer %d from %s to %s: %w", amount, from, to, err)
	}

	log.Ctx(ctx).Debug().
		Str("transfer_id", transferId).
		Str("from", from).
		Str("to", to).
		Uint64("amount", amount).
		Msg("Vault transfer completed")

	return nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.VaultConfig,
) (T, error) {
	caller := utils.GetFunctionName(1)

	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// Insufficient funds is a terminal outcome, retrying cannot help
			if errors.Is(err, ledger.ErrInsufficientFunds) {
				return false
			}
			return !strings.Contains(err.Error(), "status code 4")
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Str("caller", caller).
				Uint("attempt", n+1).
				Msg("Retrying vault client call")
		}),
	)
	return result, err
}
