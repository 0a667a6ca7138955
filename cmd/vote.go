package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var voteCmd = &cobra.Command{
	Use:   "vote [username]",
	Short: "Vote for a delegate",
	Long: `Vote for a delegate with your wallet. An account holds one vote, so
unvote your current delegate first.

Example:
  arkgo vote genesis_1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVote(cmd, args[0], true)
	},
}

var unvoteCmd = &cobra.Command{
	Use:   "unvote [username]",
	Short: "Remove your vote from a delegate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVote(cmd, args[0], false)
	},
}

func runVote(cmd *cobra.Command, username string, add bool) error {
	e, err := unlockedEnv(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	delegate, err := e.client.GetDelegate(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch delegate: %w", err)
	}
	if delegate == nil {
		return fmt.Errorf("delegate %s not found", username)
	}

	address, err := e.manager.Address()
	if err != nil {
		return err
	}
	current, err := e.client.GetVote(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch current vote: %w", err)
	}

	switch {
	case add && current != nil && current.PublicKey == delegate.PublicKey:
		return fmt.Errorf("you already vote for %s", delegate.Username)
	case add && current != nil:
		return fmt.Errorf("you already vote for %s. Run 'arkgo unvote %s' first", current.Username, current.Username)
	case !add && (current == nil || current.PublicKey != delegate.PublicKey):
		return fmt.Errorf("you do not vote for %s", delegate.Username)
	}

	action := "Vote for"
	if !add {
		action = "Remove vote from"
	}
	fmt.Printf("🗳  %s %s\n", action, color.CyanString(delegate.Username))
	fmt.Printf("   Fee: %s\n", api.FormatBalance(api.Arktoshi(ark.VoteFee)))

	if !getTransactionConfirmation(e.cfg) {
		fmt.Println("❌ Vote cancelled by user")
		return nil
	}

	passphrase, secondPassphrase, err := e.manager.Passphrases()
	if err != nil {
		return err
	}

	send := e.client.SendVote
	if !add {
		send = e.client.SendUnvote
	}
	tx, err := send(ctx, *delegate, passphrase, secondPassphrase)
	if err != nil {
		return err
	}

	fmt.Println("✅ Vote broadcast!")
	fmt.Printf("   ID: %s\n", color.CyanString(tx.ID))
	return nil
}
