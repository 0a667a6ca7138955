package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/chinmay1088/arkgo/api"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check ARK balance",
	Long: `Check the ARK balance of your wallet or of any address.

Examples:
  arkgo balance                   # Wallet balance
  arkgo balance --currency USD    # With USD value
  arkgo balance AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func init() {
	balanceCmd.Flags().StringP("currency", "c", "", "Show value in this fiat currency (e.g. USD, EUR)")
}

func runBalance(cmd *cobra.Command, args []string) error {
	e, address, err := targetAddress(cmd, args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	currency, _ := cmd.Flags().GetString("currency")
	currency = strings.ToUpper(currency)

	account, err := e.client.GetAccount(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	fmt.Println("💰 Wallet Balance")
	fmt.Printf("🌐 Network: %s\n", networkLabel(e.cfg))
	fmt.Println()

	var balance api.Arktoshi
	if account != nil {
		balance = account.Balance
	}
	fmt.Printf("🔷 ARK: %s\n", api.FormatBalance(balance))

	if currency != "" {
		if e.cfg.IsDevnet() {
			fmt.Println("   💵 Fiat values are not available on devnet")
		} else if err := printFiatValue(ctx, e.client, balance, currency); err != nil {
			fmt.Printf("   💵 %s: Error fetching price - %v\n", currency, err)
		}
	}

	fmt.Printf("   📍 Address: %s\n", address)
	return nil
}

func printFiatValue(ctx context.Context, client *api.Client, amount api.Arktoshi, currency string) error {
	ticker, err := client.GetTicker(ctx)
	if err != nil {
		return err
	}
	if ticker == nil {
		return fmt.Errorf("ticker unavailable")
	}

	rate, ok := ticker.Rate(currency)
	if !ok {
		return fmt.Errorf("unsupported currency %s", currency)
	}

	fmt.Printf("   💵 %s: %s\n", currency, amount.Decimal().Mul(rate).StringFixed(2))
	return nil
}
