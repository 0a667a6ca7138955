package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/arkgo/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block [id]",
	Short: "Show a block, the last one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBlock,
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List recent blocks",
	Long: `List recent blocks, optionally only those forged by one delegate.

Examples:
  arkgo blocks
  arkgo blocks --delegate genesis_1 --limit 20 --offset 20`,
	Args: cobra.NoArgs,
	RunE: runBlocks,
}

func init() {
	blocksCmd.Flags().String("delegate", "", "Only blocks forged by this delegate")
	blocksCmd.Flags().IntP("limit", "l", 10, "Blocks per page (max 51)")
	blocksCmd.Flags().IntP("offset", "o", 0, "Number of blocks to skip")
}

func runBlock(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var block *api.Block
	if len(args) == 1 {
		block, err = e.client.GetBlock(ctx, args[0])
	} else {
		block, err = e.client.GetLastBlock(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch block: %w", err)
	}
	if block == nil {
		fmt.Println("❌ Block not found")
		return nil
	}

	fmt.Printf("🧱 Block %s\n", color.CyanString(block.ID))
	fmt.Printf("   Height:        %d\n", block.Height)
	fmt.Printf("   Previous:      %s\n", block.PreviousBlock)
	fmt.Printf("   Transactions:  %d\n", block.NumberOfTransactions)
	fmt.Printf("   Total amount:  %s\n", api.FormatBalance(block.TotalAmount))
	fmt.Printf("   Total fee:     %s\n", api.FormatBalance(block.TotalFee))
	fmt.Printf("   Reward:        %s\n", api.FormatBalance(block.Reward))
	fmt.Printf("   Generator:     %s\n", block.GeneratorID)
	fmt.Printf("   Confirmations: %d\n", block.Confirmations)

	return nil
}

func runBlocks(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	username, _ := cmd.Flags().GetString("delegate")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	var blocks []api.Block
	if username == "" {
		blocks, err = e.client.GetBlocks(ctx)
	} else {
		delegate, derr := e.client.GetDelegate(ctx, username)
		if derr != nil {
			return fmt.Errorf("failed to fetch delegate: %w", derr)
		}
		if delegate == nil {
			return fmt.Errorf("delegate %s not found", username)
		}
		blocks, err = e.client.GetBlocksByDelegate(ctx, *delegate, limit, offset)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch blocks: %w", err)
	}

	if len(blocks) == 0 {
		fmt.Println("No blocks found")
		return nil
	}

	fmt.Printf("%-10s %-22s %-4s %-18s %s\n", "HEIGHT", "ID", "TXS", "FEE", "GENERATOR")
	for _, b := range blocks {
		fmt.Printf("%-10d %-22s %-4d %-18s %s\n", b.Height, b.ID, b.NumberOfTransactions, api.FormatBalance(b.TotalFee), b.GeneratorID)
	}
	return nil
}
