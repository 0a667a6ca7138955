package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new wallet",
	Long: `Initialize a new arkgo wallet with a secure passphrase.

This command will:
  - Generate a new 12-word passphrase
  - Create an encrypted vault
  - Show your address on the current network`,
	RunE: runInit,
}

func readNewPassword() (string, error) {
	fmt.Print("Enter a password for your wallet: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters long")
	}

	fmt.Print("Confirm password: ")
	confirmPassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}
	fmt.Println()

	if string(password) != string(confirmPassword) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}

func runInit(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	if e.manager.VaultExists() {
		return fmt.Errorf("wallet already exists. Remove ~/.arkgo/wallet.vault to create a new wallet")
	}

	fmt.Println("🚀 Initializing arkgo wallet")
	fmt.Println()

	password, err := readNewPassword()
	if err != nil {
		return err
	}

	fmt.Println("Generating wallet...")
	passphrase, err := e.manager.Initialize(password)
	if err != nil {
		return fmt.Errorf("failed to initialize wallet: %w", err)
	}

	address, err := e.manager.Address()
	if err != nil {
		return err
	}

	fmt.Println("✅ Wallet initialized successfully!")
	fmt.Println()
	fmt.Println("🔐 Passphrase (12 words):")
	fmt.Println()
	fmt.Printf("   %s\n", passphrase)
	fmt.Println()
	fmt.Printf("📍 Address (%s): %s\n", networkLabel(e.cfg), address)
	fmt.Println()
	fmt.Println("⚠️  IMPORTANT:")
	fmt.Println("   - Write down this passphrase and store it securely")
	fmt.Println("   - Anyone with this passphrase can spend your funds")
	fmt.Println("   - It is the only way to recover your wallet")
	fmt.Println()
	fmt.Println("🔑 Next steps:")
	fmt.Println("   - Run 'arkgo address' to see your address")
	fmt.Println("   - Run 'arkgo balance' to check your balance")

	return nil
}
