package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/config"
	jsoniter "github.com/json-iterator/go"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export wallet data",
	Long: `Export your balance and transaction history.

File formats:
  --csv        Export to CSV format (default)
  --json       Export to JSON format

Examples:
  arkgo export                    # Export to CSV (default)
  arkgo export --json             # Export to JSON
  arkgo export --csv --json       # Export to both formats`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	csvFlag  bool
	jsonFlag bool
)

func init() {
	exportCmd.Flags().BoolVar(&csvFlag, "csv", false, "Export to CSV format")
	exportCmd.Flags().BoolVar(&jsonFlag, "json", false, "Export to JSON format")
}

// ExportData is the exported wallet snapshot
type ExportData struct {
	ExportDate   string            `json:"export_date"`
	Network      string            `json:"network"`
	Address      string            `json:"address"`
	Balance      string            `json:"balance"`
	USDValue     string            `json:"usd_value,omitempty"`
	Transactions []TransactionData `json:"transactions"`
}

type TransactionData struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	Direction   string `json:"direction"`
	VendorField string `json:"vendor_field,omitempty"`
	Timestamp   string `json:"timestamp"`
	Height      int64  `json:"height"`
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := unlockedEnv(cmd)
	if err != nil {
		return err
	}
	if !csvFlag && !jsonFlag {
		csvFlag = true
	}
	ctx := context.Background()

	address, err := e.manager.Address()
	if err != nil {
		return err
	}

	fmt.Printf("🌐 Current Network: %s\n", strings.ToUpper(e.cfg.Network))
	fmt.Println("📊 Preparing export data...")
	bar := progressbar.NewOptions(100,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription("[cyan][1/3][reset] Collecting data..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:     "[green]=[reset]",
			SaucerHead: "[green]>[reset]",
			BarStart:   "[",
			BarEnd:     "]",
		}),
	)

	bar.Set(0)
	account, err := e.client.GetAccount(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	bar.Set(20)

	txs, err := addressHistory(ctx, e.client, address)
	if err != nil {
		return err
	}
	bar.Set(50)

	var balance api.Arktoshi
	if account != nil {
		balance = account.Balance
	}
	data := buildExport(e.cfg.Network, address, balance, txs, time.Now())
	if !e.cfg.IsDevnet() {
		if ticker, err := e.client.GetTicker(ctx); err == nil && ticker != nil {
			if rate, ok := ticker.Rate("USD"); ok {
				data.USDValue = balance.Decimal().Mul(rate).StringFixed(2)
			}
		}
	}

	bar.Set(70)
	bar.Describe("[cyan][2/3][reset] Preparing export files...")
	exportDir, err := prepareExportDirectory()
	if err != nil {
		return fmt.Errorf("failed to prepare export directory: %w", err)
	}

	bar.Set(85)
	bar.Describe("[cyan][3/3][reset] Writing export files...")
	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(exportDir, fmt.Sprintf("arkgo_%s_%s", e.cfg.Network, timestamp))
	if csvFlag {
		if err := writeCSVFile(base+".csv", data); err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
	}
	if jsonFlag {
		if err := writeJSONFile(base+".json", data); err != nil {
			return fmt.Errorf("failed to write JSON export: %w", err)
		}
	}

	bar.Set(100)
	bar.Describe("[green][✓][reset] Export completed!")
	fmt.Println()

	fmt.Println("📁 Export completed successfully!")
	fmt.Printf("📍 Files saved to: %s\n", exportDir)
	fmt.Printf("   Transactions: %d\n", len(data.Transactions))

	return nil
}

func buildExport(network, address string, balance api.Arktoshi, txs []api.Transaction, now time.Time) *ExportData {
	data := &ExportData{
		ExportDate:   now.Format("2006-01-02 15:04:05"),
		Network:      network,
		Address:      address,
		Balance:      api.FormatBalance(balance),
		Transactions: make([]TransactionData, 0, len(txs)),
	}

	for _, tx := range txs {
		direction := "in"
		switch {
		case tx.SenderID == address && tx.RecipientID == address:
			direction = "self"
		case tx.SenderID == address:
			direction = "out"
		}

		vendorField := ""
		if tx.VendorField != nil {
			vendorField = *tx.VendorField
		}

		data.Transactions = append(data.Transactions, TransactionData{
			ID:          tx.ID,
			Type:        tx.Type.String(),
			From:        tx.SenderID,
			To:          tx.RecipientID,
			Amount:      tx.Amount.Decimal().StringFixed(8),
			Fee:         tx.Fee.Decimal().StringFixed(8),
			Direction:   direction,
			VendorField: vendorField,
			Timestamp:   txTime(tx).UTC().Format(time.RFC3339),
			Height:      tx.Height,
		})
	}
	return data
}

func prepareExportDirectory() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}

	exportDir := filepath.Join(dir, "exports")
	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return "", err
	}
	return exportDir, nil
}

func writeCSVFile(filename string, data *ExportData) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"id", "type", "direction", "from", "to", "amount", "fee", "vendor_field", "timestamp", "height"}); err != nil {
		return err
	}
	for _, tx := range data.Transactions {
		if err := writer.Write([]string{
			tx.ID, tx.Type, tx.Direction, tx.From, tx.To, tx.Amount, tx.Fee, tx.VendorField, tx.Timestamp, fmt.Sprint(tx.Height),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeJSONFile(filename string, data *ExportData) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, out, 0600)
}
