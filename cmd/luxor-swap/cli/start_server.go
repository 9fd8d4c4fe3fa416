package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Luxor-Foundation/luxor-swap/internal/api"
	"github.com/Luxor-Foundation/luxor-swap/internal/clients/ammclient"
	"github.com/Luxor-Foundation/luxor-swap/internal/clients/vaultclient"
	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/db"
	dbmodel "github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/tracing"
	"github.com/Luxor-Foundation/luxor-swap/internal/queue"
	"github.com/Luxor-Foundation/luxor-swap/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the Luxor Swap server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up swap db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer qm.Shutdown()

	var vaultClient vaultclient.VaultInterface
	vaultClient, err = vaultclient.NewVaultClient(&cfg.Vault)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating vault client")
	}
	vaultClient = vaultclient.NewVaultClientWithMetrics(vaultClient)

	var ammClient ammclient.AmmInterface
	ammClient, err = ammclient.NewAmmClient(&cfg.Amm)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating amm client")
	}
	ammClient = ammclient.NewAmmClientWithMetrics(ammClient)

	holdings := services.NewVaultHoldingsOracle(vaultClient)
	service := services.NewService(cfg, dbClient, vaultClient, ammClient, holdings, qm)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartBuybackPoller(ctx)
	defer service.StopBuybackPoller()

	return api.New(&cfg.Api, service).Start(ctx)
}
