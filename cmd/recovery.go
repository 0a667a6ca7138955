package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chinmay1088/arkgo/wallet"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var recoveryPhraseCmd = &cobra.Command{
	Use:   "recovery-phrase [show|import]",
	Short: "Manage wallet passphrase",
	Long: `Manage your wallet's passphrase.

Commands:
  show    - Display the passphrase (requires an unlocked wallet)
  import  - Import wallet from an existing 12-word passphrase`,
	Args: cobra.ExactArgs(1),
	RunE: runRecoveryPhrase,
}

func runRecoveryPhrase(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	action := strings.ToLower(args[0])

	switch action {
	case "show":
		return showRecoveryPhrase(e.manager)
	case "import":
		return importRecoveryPhrase(e)
	default:
		return fmt.Errorf("invalid action: %s. Use 'show' or 'import'", action)
	}
}

func showRecoveryPhrase(manager *wallet.Manager) error {
	if !manager.VaultExists() {
		return fmt.Errorf("no wallet found. Run 'arkgo init' first")
	}

	passphrase, secondPassphrase, err := manager.Passphrases()
	if err != nil {
		return fmt.Errorf("wallet is locked. Run 'arkgo unlock' first")
	}

	fmt.Println("🔐 Passphrase:")
	fmt.Println()
	fmt.Printf("   %s\n", passphrase)
	if secondPassphrase != "" {
		fmt.Println()
		fmt.Println("🔐 Second passphrase:")
		fmt.Printf("   %s\n", secondPassphrase)
	}
	fmt.Println()
	fmt.Println("⚠️  Security Warning:")
	fmt.Println("   - Anyone with this passphrase can spend your funds")
	fmt.Println("   - Never share it with anyone")

	return nil
}

func importRecoveryPhrase(e *env) error {
	if e.manager.VaultExists() {
		return fmt.Errorf("wallet already exists. Remove existing wallet first")
	}

	fmt.Println("📝 Import Wallet from Passphrase")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter passphrase (12 words): ")
	passphrase, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}

	fmt.Print("Enter second passphrase (leave empty if none): ")
	secondPassphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read second passphrase: %w", err)
	}
	fmt.Println()

	password, err := readNewPassword()
	if err != nil {
		return err
	}

	if err := e.manager.Import(passphrase, strings.TrimSpace(string(secondPassphrase)), password); err != nil {
		return fmt.Errorf("failed to import wallet: %w", err)
	}

	address, err := e.manager.Address()
	if err != nil {
		return err
	}

	fmt.Println("✅ Wallet imported successfully!")
	fmt.Printf("📍 Address (%s): %s\n", networkLabel(e.cfg), address)

	return nil
}
