package cmd

import (
	"fmt"
	"strings"

	"github.com/chinmay1088/arkgo/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|devnet]",
	Short: "Show or change network",
	Long: `Show the current network or switch between mainnet and devnet.
Switching resets the node URL and headers to the network defaults.

Examples:
  arkgo network            # Show current network
  arkgo network mainnet    # Switch to mainnet
  arkgo network devnet     # Switch to devnet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return showCurrentNetwork(cfg)
	}

	network := strings.ToLower(args[0])
	if _, err := config.PresetFor(network); err != nil {
		return err
	}

	cfg.Network = network
	cfg.NodeURL = ""
	cfg.Nethash = ""
	cfg.Version = ""
	cfg.Port = 0
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Printf("🌐 Switched to %s network\n", strings.ToUpper(network))
	fmt.Println("💡 Your address differs per network, run 'arkgo unlock' again")
	return nil
}

func showCurrentNetwork(cfg *config.Config) error {
	label := color.GreenString("Mainnet")
	if cfg.IsDevnet() {
		label = color.YellowString("Devnet")
	}
	nethash, version, port := cfg.Headers()

	fmt.Printf("🌐 Current network: %s\n", label)
	fmt.Println()
	fmt.Println("Network details:")
	fmt.Printf("   - Node:    %s\n", cfg.ResolvedNodeURL())
	fmt.Printf("   - Nethash: %s\n", nethash)
	fmt.Printf("   - Version: %s\n", version)
	fmt.Printf("   - Port:    %d\n", port)
	return nil
}
