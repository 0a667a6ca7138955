package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/chinmay1088/arkgo/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "List peers known to the node",
	Args:  cobra.NoArgs,
	RunE:  runPeers,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show node version, sync state and last block",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runPeers(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	peers, err := e.client.GetPeers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch peers: %w", err)
	}

	fmt.Printf("%-22s %-10s %-10s %-6s %s\n", "ADDRESS", "VERSION", "HEIGHT", "DELAY", "STATUS")
	for _, p := range peers {
		status := color.New(color.FgRed).Sprint(p.Status)
		if p.IsOK() {
			status = color.New(color.FgGreen).Sprint(p.Status)
		}
		fmt.Printf("%-22s %-10s %-10d %-6d %s\n", p.Address(), p.Version, p.Height, p.Delay, status)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()

	var (
		peerVersion *api.PeerVersion
		syncStatus  *api.SyncStatus
		last        *api.Block
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		peerVersion, err = e.client.GetPeerVersion(gctx)
		return err
	})
	g.Go(func() (err error) {
		syncStatus, err = e.client.GetSyncStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		last, err = e.client.GetLastBlock(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to reach node: %w", err)
	}

	fmt.Printf("🌐 Node %s (%s)\n", e.client.BaseURL(), networkLabel(e.cfg))
	if peerVersion != nil {
		fmt.Printf("   Version:    %s %s\n", peerVersion.Version, peerVersion.Build)
	}
	if syncStatus != nil {
		state := color.GreenString("synced")
		if syncStatus.Syncing {
			state = color.YellowString("syncing (%d blocks behind)", syncStatus.Blocks)
		}
		fmt.Printf("   Height:     %d (%s)\n", syncStatus.Height, state)
	}
	if last != nil {
		fmt.Printf("   Last block: %s at height %d\n", last.ID, last.Height)
	}
	fmt.Printf("\n⏱️ Loaded in %v\n", time.Since(start).Round(time.Millisecond*10))

	return nil
}
