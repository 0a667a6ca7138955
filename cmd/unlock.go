package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock wallet for session",
	Long: `Unlock your arkgo wallet for the next 30 minutes.
The wallet stays unlocked until the session expires or you run 'arkgo lock'.

Example:
  arkgo unlock`,
	RunE: runUnlock,
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock wallet and end the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		e.manager.Lock()
		fmt.Println("🔒 Wallet locked")
		return nil
	},
}

func runUnlock(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	if !e.manager.VaultExists() {
		return fmt.Errorf("no wallet found. Run 'arkgo init' to create a new wallet")
	}

	if e.manager.IsUnlocked() {
		fmt.Println("✅ Wallet is already unlocked")
		return nil
	}

	fmt.Print("Enter your wallet password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Println("Unlocking wallet...")
	if err := e.manager.Unlock(string(password)); err != nil {
		return fmt.Errorf("failed to unlock wallet: %w", err)
	}

	fmt.Println("✅ Wallet unlocked successfully!")
	fmt.Println("💡 Use 'arkgo address' to see your address")
	fmt.Println("💡 Use 'arkgo balance' to check your balance")

	return nil
}
