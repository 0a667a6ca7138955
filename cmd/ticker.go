package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/arkgo/api"
	"github.com/spf13/cobra"
)

var tickerCmd = &cobra.Command{
	Use:   "ticker",
	Short: "Show the ARK price in every supported currency",
	Args:  cobra.NoArgs,
	RunE:  runTicker,
}

func runTicker(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	ticker, err := e.client.GetTicker(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch prices: %w", err)
	}
	if ticker == nil {
		return fmt.Errorf("price ticker unavailable")
	}

	fmt.Println("💹 1 ARK =")
	for _, code := range api.TickerCurrencies {
		if rate, ok := ticker.Rate(code); ok {
			fmt.Printf("   %-4s %s\n", code, rate.String())
		}
	}
	return nil
}
