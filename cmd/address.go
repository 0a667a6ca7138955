package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show wallet address",
	Long: `Show your wallet address and public key on the current network.

Example:
  arkgo address`,
	Args: cobra.NoArgs,
	RunE: runAddress,
}

func runAddress(cmd *cobra.Command, args []string) error {
	e, err := unlockedEnv(cmd)
	if err != nil {
		return err
	}

	keys, err := e.manager.KeyPair()
	if err != nil {
		return err
	}

	fmt.Println("🔑 Your wallet address:")
	fmt.Printf("🌐 Network: %s\n", networkLabel(e.cfg))
	fmt.Println()
	fmt.Printf("Address:    %s\n", keys.Address(e.cfg.AddressVersion()))
	fmt.Printf("Public key: %s\n", keys.PublicKeyHex())

	return nil
}
