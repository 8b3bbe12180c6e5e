package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swgoh-tools/holotable/internal/cache"
	"github.com/swgoh-tools/holotable/internal/config"
	"github.com/swgoh-tools/holotable/internal/gear"
	"github.com/swgoh-tools/holotable/internal/report"
	"github.com/swgoh-tools/holotable/internal/roster"
	"github.com/swgoh-tools/holotable/internal/swgoh"
)

var salvageCmd = &cobra.Command{
	Use:   "salvage [ally-code]",
	Short: "Rank a player's characters by outstanding kyrotech salvage",
	Long: `Fetches a player's roster and computes, for every character below the
gear cap, the kyrotech salvage still needed to reach it. Already-equipped
pieces at the current gear level are credited. Characters are ranked by
total outstanding salvage.

The ally code may include dashes (123-456-789) or not (123456789).`,
	Args: cobra.ExactArgs(1),
	RunE: runSalvage,
}

func init() {
	rootCmd.AddCommand(salvageCmd)
}

func runSalvage(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := report.NewPrinter()
	ctx := cmd.Context()

	store, err := cache.Open(ctx, cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	client := newClient(cfg, store, printer)

	units, err := client.Units(ctx)
	if err != nil {
		return err
	}
	pieces, err := client.GearPieces(ctx)
	if err != nil {
		return err
	}
	player, err := client.Player(ctx, args[0])
	if err != nil {
		return err
	}
	printer.Stepf("analyzing %s (%d units)", player.Data.Name, len(player.Units))

	resolver := gear.NewResolver(swgoh.BuildGearLookup(pieces), cfg.TrackedSalvage)
	calc := gear.NewCalculator(resolver, cfg.MaxGearTier)
	analyzer := roster.NewAnalyzer(calc, swgoh.BuildUnitLookup(units.Data), cfg.MaxGearTier)

	results, err := analyzer.Analyze(player.Units)
	if err != nil {
		return fmt.Errorf("analyze roster: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.NewSalvageReport().Render(results))
	return nil
}

// newClient builds an API client from config. Progress logging is wired to
// the printer only in verbose mode.
func newClient(cfg config.Config, store *cache.Store, printer *report.Printer) *swgoh.Client {
	client := swgoh.NewClient(cfg.Fetch.BaseURL, cfg.Fetch.APIKey,
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, store)
	if cfg.Verbose {
		client.Logf = printer.Stepf
	}
	return client
}
