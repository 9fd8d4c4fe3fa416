package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Luxor-Foundation/luxor-swap/internal/clients/vaultclient"
	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/db"
	dbmodel "github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/tracing"
	"github.com/Luxor-Foundation/luxor-swap/internal/queue"
	"github.com/Luxor-Foundation/luxor-swap/internal/services"
)

func InitProtocolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-protocol",
		Short: "Seeds the protocol parameters and global accounting from the config",
		Args:  cobra.ExactArgs(0),
		RunE:  initProtocol,
	}

	return cmd
}

func initProtocol(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	metrics.Init(cfg.Metrics.GetMetricsPort())

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		log.Fatal().Err(err).Msg("error while setting up swap db model")
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}

	vaultClient, err := vaultclient.NewVaultClient(&cfg.Vault)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating vault client")
	}

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer qm.Shutdown()

	service := services.NewService(cfg, dbClient, vaultClient, nil, nil, qm)
	if err := service.InitializeProtocol(ctx); err != nil {
		return err
	}

	log.Info().Msg("Protocol initialized")
	return nil
}
