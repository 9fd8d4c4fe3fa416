package ammclient

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

type AmmClient struct {
	httpClient *http.Client
	cfg        *config.AmmConfig
}

func NewAmmClient(cfg *config.AmmConfig) (*AmmClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("amm config is required")
	}

	return &AmmClient{
		httpClient: &http.Client{},
		cfg:        cfg,
	}, nil
}

func (c *AmmClient) GetBaseURL() string {
	return c.cfg.Endpoint
}

func (c *AmmClient) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *AmmClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *AmmClient) Reserves(ctx context.Context) (*Reserves, error) {
	type empty struct{}
	type reservesResponse struct {
		Native      uint64 `json:"native"`
		RewardToken uint64 `json:"reward_token"`
	}

	callForReserves := func() (*Reserves, error) {
		opts := &client.HttpClientOptions{
			Path:         "/v1/pool/reserves",
			TemplatePath: "/v1/pool/reserves",
		}

		resp, err := client.SendRequest[empty, reservesResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return nil, err
		}

		return &Reserves{
			Native:      resp.Native,
			RewardToken: resp.RewardToken,
		}, nil
	}

	reserves, err := clientCallWithRetry(ctx, callForReserves, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool reserves: %w", err)
	}

	return reserves, nil
}

func (c *AmmClient) Swap(ctx context.Context, amountIn, minimumOut uint64) (uint64, error) {
	type swapRequest struct {
		AmountIn   uint64 `json:"amount_in"`
		MinimumOut uint64 `json:"minimum_out"`
	}
	type swapResponse struct {
		AmountOut uint64 `json:"amount_out"`
	}

	callForSwap := func() (uint64, error) {
		opts := &client.HttpClientOptions{
			Path:         "/v1/pool/swap-base-input",
			TemplatePath: "/v1/pool/swap-base-input",
		}

		req := &swapRequest{AmountIn: amountIn, MinimumOut: minimumOut}
		resp, err := client.SendRequest[swapRequest, swapResponse](ctx, c, http.MethodPost, opts, req)
		if err != nil {
			var errResp *client.ErrorResponse
			if errors.As(err, &errResp) && errResp.StatusCode == http.StatusUnprocessableEntity {
				return 0, fmt.Errorf("%w: %s", ledger.ErrSwapFailed, errResp.Message)
			}
			return 0, err
		}

		if resp.AmountOut < minimumOut {
			return 0, fmt.Errorf("%w: output %d below minimum %d", ledger.ErrSwapFailed, resp.AmountOut, minimumOut)
		}

		return resp.AmountOut, nil
	}

	amountOut, err := clientCallWithRetry(ctx, callForSwap, c.cfg)
	if err != nil {
		if errors.Is(err, ledger.ErrSwapFailed) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to swap %d native: %w", amountIn, err)
	}

	log.Ctx(ctx).Debug().
		Uint64("amount_in", amountIn).
		Uint64("amount_out", amountOut).
		Msg("Swap executed")

	return amountOut, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.AmmConfig,
) (T, error) {
	caller := utils.GetFunctionName(1)

	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// A rejected swap is a terminal outcome, the pool state has moved
			if errors.Is(err, ledger.ErrSwapFailed) {
				return false
			}
			return !strings.Contains(err.Error(), "status code 4")
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Str("caller", caller).
				Uint("attempt", n+1).
				Msg("Retrying amm client call")
		}),
	)
	return result, err
}
