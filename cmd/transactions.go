package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	pageFlag  int
	limitFlag int
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions [address]",
	Short: "Show transaction history",
	Long: `Show sent and received transactions of your wallet or of any address.
With --latest the newest transactions of the whole chain are listed instead.

Examples:
  arkgo transactions
  arkgo transactions --latest --page 2 --limit 20
  arkgo transactions AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransactions,
}

var txCmd = &cobra.Command{
	Use:   "tx [id]",
	Short: "Show a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTx,
}

func init() {
	transactionsCmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "Page number (with --latest)")
	transactionsCmd.Flags().IntVarP(&limitFlag, "limit", "l", 10, "Transactions per page (1-51)")
	transactionsCmd.Flags().Bool("latest", false, "List the newest transactions of the chain")
}

func runTransactions(cmd *cobra.Command, args []string) error {
	if pageFlag < 1 {
		return fmt.Errorf("page must be at least 1")
	}
	if limitFlag < 1 || limitFlag > api.MaxPageSize {
		return fmt.Errorf("limit must be between 1 and %d", api.MaxPageSize)
	}
	ctx := context.Background()
	startTime := time.Now()

	latest, _ := cmd.Flags().GetBool("latest")
	if latest {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		txs, err := e.client.GetTransactionsPage(ctx, limitFlag, (pageFlag-1)*limitFlag)
		if err != nil {
			return fmt.Errorf("failed to fetch transactions: %w", err)
		}
		fmt.Printf("📜 Latest transactions (page %d):\n\n", pageFlag)
		printTransactions(txs, "")
		fmt.Printf("\n⏱️ Loaded in %v\n", time.Since(startTime).Round(time.Millisecond*10))
		return nil
	}

	e, address, err := targetAddress(cmd, args)
	if err != nil {
		return err
	}

	fmt.Println("🔄 Loading transactions...")
	txs, err := addressHistory(ctx, e.client, address)
	if err != nil {
		return err
	}
	if len(txs) > limitFlag {
		txs = txs[:limitFlag]
	}

	fmt.Printf("📜 Transaction history of %s\n", address)
	fmt.Printf("🌐 Network: %s\n\n", networkLabel(e.cfg))
	printTransactions(txs, address)
	fmt.Printf("\n⏱️ Loaded in %v\n", time.Since(startTime).Round(time.Millisecond*10))
	return nil
}

// addressHistory merges sent and received transactions, newest first.
func addressHistory(ctx context.Context, client *api.Client, address string) ([]api.Transaction, error) {
	sentCh := api.Async(ctx, func(ctx context.Context) ([]api.Transaction, error) {
		return client.GetSentTransactions(ctx, address)
	})
	receivedCh := api.Async(ctx, func(ctx context.Context) ([]api.Transaction, error) {
		return client.GetReceivedTransactions(ctx, address)
	})

	sent, received := <-sentCh, <-receivedCh
	if sent.Err != nil {
		return nil, fmt.Errorf("failed to fetch sent transactions: %w", sent.Err)
	}
	if received.Err != nil {
		return nil, fmt.Errorf("failed to fetch received transactions: %w", received.Err)
	}

	seen := make(map[string]bool)
	var txs []api.Transaction
	for _, tx := range append(sent.Value, received.Value...) {
		if seen[tx.ID] {
			continue
		}
		seen[tx.ID] = true
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Timestamp > txs[j].Timestamp
	})
	return txs, nil
}

func txTime(tx api.Transaction) time.Time {
	return ark.Epoch.Add(time.Duration(tx.Timestamp) * time.Second)
}

func printTransactions(txs []api.Transaction, owner string) {
	if len(txs) == 0 {
		fmt.Println("No transactions found")
		return
	}

	for _, tx := range txs {
		direction := "  "
		amount := api.FormatBalance(tx.Amount)
		switch {
		case owner == "":
		case tx.SenderID == owner && tx.RecipientID == owner:
			direction = "↺ "
		case tx.SenderID == owner:
			direction = "↑ "
			amount = color.RedString("-%s", amount)
		default:
			direction = "↓ "
			amount = color.GreenString("+%s", amount)
		}

		fmt.Printf("%s%s  %-22s %s\n", direction, txTime(tx).Format("2006-01-02 15:04"), tx.Type, amount)
		fmt.Printf("   %s\n", tx.ID)
	}
}

func runTx(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	tx, err := e.client.GetTransaction(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch transaction: %w", err)
	}
	if tx == nil {
		fmt.Printf("❌ Transaction %s not found\n", args[0])
		return nil
	}

	fmt.Printf("🧾 Transaction %s\n", color.CyanString(tx.ID))
	fmt.Printf("   Type:          %s\n", tx.Type)
	fmt.Printf("   Time:          %s\n", txTime(*tx).Format(time.RFC3339))
	fmt.Printf("   From:          %s\n", tx.SenderID)
	if tx.RecipientID != "" {
		fmt.Printf("   To:            %s\n", tx.RecipientID)
	}
	fmt.Printf("   Amount:        %s\n", api.FormatBalance(tx.Amount))
	fmt.Printf("   Fee:           %s\n", api.FormatBalance(tx.Fee))
	if tx.VendorField != nil && strings.TrimSpace(*tx.VendorField) != "" {
		fmt.Printf("   Vendor field:  %s\n", *tx.VendorField)
	}
	fmt.Printf("   Block:         %s (height %d)\n", tx.BlockID, tx.Height)
	fmt.Printf("   Confirmations: %d\n", tx.Confirmations)

	return nil
}
