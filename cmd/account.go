package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/arkgo/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account [address]",
	Short: "Show account details",
	Long: `Show balance, public key and vote of an account.
Without an address the wallet address is used.

Examples:
  arkgo account
  arkgo account AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAccount,
}

// targetAddress returns args[0] or the wallet address.
func targetAddress(cmd *cobra.Command, args []string) (*env, string, error) {
	if len(args) == 1 {
		e, err := newEnv(cmd)
		return e, args[0], err
	}

	e, err := unlockedEnv(cmd)
	if err != nil {
		return nil, "", err
	}
	address, err := e.manager.Address()
	return e, address, err
}

func runAccount(cmd *cobra.Command, args []string) error {
	e, address, err := targetAddress(cmd, args)
	if err != nil {
		return err
	}
	ctx := context.Background()

	account, err := e.client.GetAccount(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if account == nil {
		fmt.Printf("❌ Account %s not found\n", address)
		return nil
	}

	fmt.Printf("👤 Account %s\n", color.CyanString(account.Address))
	fmt.Printf("🌐 Network: %s\n", networkLabel(e.cfg))
	fmt.Println()
	fmt.Printf("   Balance:             %s\n", api.FormatBalance(account.Balance))
	fmt.Printf("   Unconfirmed balance: %s\n", api.FormatBalance(account.UnconfirmedBalance))
	if account.PublicKey != "" {
		fmt.Printf("   Public key:          %s\n", account.PublicKey)
	}
	if account.HasSecondSignature() {
		fmt.Printf("   Second signature:    %s\n", color.GreenString("registered"))
	}

	vote, err := e.client.GetVote(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch vote: %w", err)
	}
	if vote == nil {
		fmt.Println("   Vote:                none")
	} else {
		fmt.Printf("   Vote:                %s (rank %d)\n", vote.Username, vote.Rate)
	}

	return nil
}
