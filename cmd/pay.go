package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/chinmay1088/arkgo/config"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var payCmd = &cobra.Command{
	Use:   "pay [amount] [address]",
	Short: "Send ARK",
	Long: `Send ARK to another address. The transaction is signed locally and
broadcast to one random peer of the configured node.

Examples:
  arkgo pay 1.5 AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK
  arkgo pay 10 AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK --currency USD
  arkgo pay 1 AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK --memo "invoice 42"`,
	Args: cobra.ExactArgs(2),
	RunE: runPay,
}

func init() {
	payCmd.Flags().StringP("currency", "c", "", "Amount is given in this fiat currency (e.g. USD)")
	payCmd.Flags().StringP("memo", "m", "", "Vendor field (max 64 bytes)")
}

func runPay(cmd *cobra.Command, args []string) error {
	e, err := unlockedEnv(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	currency, _ := cmd.Flags().GetString("currency")
	memo, _ := cmd.Flags().GetString("memo")
	recipient := args[1]

	if err := ark.ValidateAddress(recipient, e.cfg.AddressVersion()); err != nil {
		return fmt.Errorf("invalid recipient for %s: %w", networkLabel(e.cfg), err)
	}
	if len(memo) > ark.MaxVendorFieldLength {
		return fmt.Errorf("memo must be at most %d bytes", ark.MaxVendorFieldLength)
	}

	amount, err := parseAmount(ctx, e.client, args[0], strings.ToUpper(currency))
	if err != nil {
		return err
	}

	sender, err := e.manager.Address()
	if err != nil {
		return err
	}
	account, err := e.client.GetAccount(ctx, sender)
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}
	total := amount + api.Arktoshi(ark.TransferFee)
	if account == nil || account.Balance < total {
		var balance api.Arktoshi
		if account != nil {
			balance = account.Balance
		}
		return fmt.Errorf("insufficient funds. You're trying to send %s plus a %s fee but your balance is only %s",
			api.FormatBalance(amount), api.FormatBalance(api.Arktoshi(ark.TransferFee)), api.FormatBalance(balance))
	}

	fmt.Println("🔷 Sending ARK Transaction")
	fmt.Println()
	fmt.Printf("   From:   %s\n", sender)
	fmt.Printf("   To:     %s\n", recipient)
	fmt.Printf("   Amount: %s\n", api.FormatBalance(amount))
	fmt.Printf("   Fee:    %s\n", api.FormatBalance(api.Arktoshi(ark.TransferFee)))
	if memo != "" {
		fmt.Printf("   Memo:   %s\n", memo)
	}

	if !getTransactionConfirmation(e.cfg) {
		fmt.Println("❌ Transaction cancelled by user")
		return nil
	}

	passphrase, secondPassphrase, err := e.manager.Passphrases()
	if err != nil {
		return err
	}

	tx, err := e.client.SendTransaction(ctx, recipient, amount, passphrase, secondPassphrase, memo)
	if err != nil {
		return err
	}

	fmt.Println("✅ Transaction broadcast!")
	fmt.Printf("   ID: %s\n", color.CyanString(tx.ID))
	return nil
}

// parseAmount converts an ARK or fiat amount to arktoshi.
func parseAmount(ctx context.Context, client *api.Client, s, currency string) (api.Arktoshi, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if !value.IsPositive() {
		return 0, fmt.Errorf("amount must be positive")
	}

	if currency != "" {
		ticker, err := client.GetTicker(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get ARK price: %w", err)
		}
		if ticker == nil {
			return 0, fmt.Errorf("ARK price unavailable")
		}
		rate, ok := ticker.Rate(currency)
		if !ok || rate.IsZero() {
			return 0, fmt.Errorf("unsupported currency %s", currency)
		}
		value = value.DivRound(rate, 8)
	}

	return api.ArkToArktoshi(value)
}

func getTransactionConfirmation(cfg *config.Config) bool {
	fmt.Println()
	if cfg.IsDevnet() {
		fmt.Printf("⚠️ You are on devnet. By confirming this transaction no real funds will be sent.\n")
	} else {
		fmt.Printf("🚨 You are on mainnet. By confirming this transaction real funds will be sent.\n")
	}

	fmt.Printf("Press y to confirm or n to stop (y/n): ")

	var response string
	fmt.Scanln(&response)

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
