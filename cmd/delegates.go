package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/arkgo/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var delegatesCmd = &cobra.Command{
	Use:   "delegates",
	Short: "List forging or standby delegates",
	Long: `List the forging delegates, the standby delegates or any page of the
delegate ranking.

Examples:
  arkgo delegates
  arkgo delegates --standby
  arkgo delegates --limit 10 --offset 100`,
	Args: cobra.NoArgs,
	RunE: runDelegates,
}

var delegateCmd = &cobra.Command{
	Use:   "delegate [username]",
	Short: "Show a delegate",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelegate,
}

var votersCmd = &cobra.Command{
	Use:   "voters [username]",
	Short: "List the voters of a delegate",
	Args:  cobra.ExactArgs(1),
	RunE:  runVoters,
}

func init() {
	delegatesCmd.Flags().Bool("standby", false, "List standby delegates (ranks 52-102)")
	delegatesCmd.Flags().IntP("limit", "l", 0, "Delegates per page (max 51)")
	delegatesCmd.Flags().IntP("offset", "o", 0, "Number of delegates to skip")
}

func runDelegates(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	standby, _ := cmd.Flags().GetBool("standby")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	var delegates []api.Delegate
	switch {
	case standby:
		delegates, err = e.client.GetStandbyDelegates(ctx)
	case limit > 0:
		delegates, err = e.client.GetDelegatesPage(ctx, limit, offset)
	default:
		delegates, err = e.client.GetDelegates(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch delegates: %w", err)
	}

	fmt.Printf("%-5s %-25s %-24s %-8s %s\n", "RANK", "USERNAME", "VOTE", "PROD %", "APPROVAL %")
	for _, d := range delegates {
		name := fmt.Sprintf("%-25s", d.Username)
		if d.IsForging() {
			name = color.New(color.FgGreen).Sprint(name)
		}
		fmt.Printf("%-5d %s %-24s %-8.2f %.2f\n", d.Rate, name, api.FormatBalance(d.Vote), d.Productivity, d.Approval)
	}
	return nil
}

func runDelegate(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	d, err := e.client.GetDelegate(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch delegate: %w", err)
	}
	if d == nil {
		fmt.Printf("❌ Delegate %s not found\n", args[0])
		return nil
	}

	status := color.YellowString("standby")
	if d.IsForging() {
		status = color.GreenString("forging")
	}

	fmt.Printf("🗳  Delegate %s (%s)\n", color.CyanString(d.Username), status)
	fmt.Printf("   Rank:            %d\n", d.Rate)
	fmt.Printf("   Address:         %s\n", d.Address)
	fmt.Printf("   Public key:      %s\n", d.PublicKey)
	fmt.Printf("   Vote:            %s\n", api.FormatBalance(d.Vote))
	fmt.Printf("   Approval:        %.2f%%\n", d.Approval)
	fmt.Printf("   Produced blocks: %d\n", d.ProducedBlocks)
	fmt.Printf("   Missed blocks:   %d\n", d.MissedBlocks)
	fmt.Printf("   Productivity:    %.2f%%\n", d.Productivity)

	return nil
}

func runVoters(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	d, err := e.client.GetDelegate(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch delegate: %w", err)
	}
	if d == nil {
		return fmt.Errorf("delegate %s not found", args[0])
	}

	voters, err := e.client.GetVotersOf(ctx, *d)
	if err != nil {
		return fmt.Errorf("failed to fetch voters: %w", err)
	}

	fmt.Printf("🗳  %d voters for %s\n", len(voters), d.Username)
	fmt.Println()
	for _, v := range voters {
		name := ""
		if v.Username != nil {
			name = *v.Username
		}
		fmt.Printf("   %-36s %-20s %s\n", v.Address, name, api.FormatBalance(v.Balance))
	}
	return nil
}
