package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/chinmay1088/arkgo/config"
	"github.com/chinmay1088/arkgo/network"
	"github.com/chinmay1088/arkgo/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds everything a command needs, built from the config file.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	manager *wallet.Manager
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	switch {
	case quiet:
		return zap.NewNop(), nil
	case verbose:
		return zap.NewDevelopment()
	default:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		return cfg.Build()
	}
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	nethash, nodeVersion, port := cfg.Headers()

	// The broadcaster lists peers through the client it is injected into.
	var client *api.Client
	lister := network.PeerListerFunc(func(ctx context.Context) ([]api.Peer, error) {
		return client.GetPeers(ctx)
	})
	broadcaster := network.New(lister, nethash, nodeVersion, port, network.WithLogger(logger))

	client, err = api.NewClient(cfg.ResolvedNodeURL(),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
		api.WithSigner(ark.NewBuilder(cfg.AddressVersion())),
		api.WithNetwork(broadcaster),
	)
	if err != nil {
		return nil, err
	}
	client.UpdateHeader(nethash, nodeVersion, port)

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		manager: wallet.NewManager(dir, cfg.Network, cfg.AddressVersion()),
	}, nil
}

// unlockedEnv returns the env after checking the wallet session.
func unlockedEnv(cmd *cobra.Command) (*env, error) {
	e, err := newEnv(cmd)
	if err != nil {
		return nil, err
	}
	if !e.manager.IsUnlocked() {
		return nil, fmt.Errorf("wallet is locked. Run 'arkgo unlock' first")
	}
	return e, nil
}

func networkLabel(cfg *config.Config) string {
	if cfg.IsDevnet() {
		return "Devnet"
	}
	return "Mainnet"
}
