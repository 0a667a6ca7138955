package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arkgo",
	Short: "A command-line client for Ark nodes",
	Long: `arkgo queries an Ark node's public API and sends signed transfers and
votes from a locally encrypted wallet.

Features:
  • Accounts, blocks, delegates, peers and transactions
  • Fiat prices from the cryptocompare ticker
  • 12-word passphrase wallet in an AES-256-GCM vault
  • Transfers, votes and unvotes broadcast to a random peer
  • Mainnet and Devnet support

Examples:
  arkgo init                          # Create new wallet
  arkgo unlock                        # Unlock wallet
  arkgo balance --currency EUR        # Check balance with EUR value
  arkgo delegates --standby           # List standby delegates
  arkgo pay 1.5 AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK
  arkgo vote genesis_1                # Vote for a delegate
  arkgo network devnet                # Switch to devnet`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress log output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(recoveryPhraseCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(delegatesCmd)
	rootCmd.AddCommand(delegateCmd)
	rootCmd.AddCommand(votersCmd)
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(tickerCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(unvoteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arkgo v%s\n", version)
	},
}
