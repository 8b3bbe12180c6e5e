package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/swgoh-tools/holotable/internal/cache"
	"github.com/swgoh-tools/holotable/internal/config"
	"github.com/swgoh-tools/holotable/internal/platoon"
	"github.com/swgoh-tools/holotable/internal/report"
	"github.com/swgoh-tools/holotable/internal/swgoh"
)

var guildCmd = &cobra.Command{
	Use:   "guild [ally-code]",
	Short: "Audit a guild's Territory Battle platoon coverage",
	Long: `Resolves the guild of the given ally code, fetches every member's
roster, and checks the guild against the platoon requirements file:

  - slot coverage per battle location
  - requirements the guild cannot fully staff, by severity
  - scarce units held by three or fewer members

  --requirements  Override the requirements file path
  --max-phase     Only consider locations open by this phase, e.g. 3 or 3b
  --watch         Re-run the analysis when the requirements file changes`,
	Args: cobra.ExactArgs(1),
	RunE: runGuild,
}

func init() {
	guildCmd.Flags().String("requirements", "", "requirements file path (default from config)")
	guildCmd.Flags().String("max-phase", "", "only consider locations open by this phase, e.g. 3 or 3b (empty = all)")
	guildCmd.Flags().Bool("watch", false, "re-run when the requirements file changes")
	rootCmd.AddCommand(guildCmd)
}

func runGuild(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := report.NewPrinter()
	ctx := cmd.Context()

	reqsPath, _ := cmd.Flags().GetString("requirements")
	if reqsPath == "" {
		reqsPath = cfg.RequirementsPath
	}
	maxPhase, _ := cmd.Flags().GetString("max-phase")
	watch, _ := cmd.Flags().GetBool("watch")

	store, err := cache.Open(ctx, cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	client := newClient(cfg, store, printer)

	guild, err := client.GuildFromAllyCode(ctx, args[0])
	if err != nil {
		return err
	}
	printer.Stepf("fetching %d rosters for %s", len(guild.Members), guild.Name)

	var done atomic.Int64
	rosters, failed, err := client.GuildRosters(ctx, guild.Members, swgoh.RosterFetchOptions{
		Workers: cfg.Fetch.Workers,
		Delay:   time.Duration(cfg.Fetch.DelayMS) * time.Millisecond,
		OnProgress: func(member swgoh.GuildMember, err error) {
			n := done.Add(1)
			if err != nil {
				printer.Warnf("skipping %s: %v", member.PlayerName, err)
				return
			}
			if cfg.Verbose {
				printer.Stepf("[%d/%d] %s", n, len(guild.Members), member.PlayerName)
			}
		},
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		printer.Warnf("%d of %d members could not be fetched", failed, len(guild.Members))
	}

	units, err := client.Units(ctx)
	if err != nil {
		return err
	}

	matrix := platoon.NewMatrixBuilder(swgoh.BuildUnitLookup(units.Data)).
		Build(rosters, guild.Name, guild.GuildID)

	render := func() error {
		return renderGuildAnalysis(cmd.OutOrStdout(), matrix, reqsPath, maxPhase)
	}
	if err := render(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	watcher, err := platoon.NewWatcher(reqsPath)
	if err != nil {
		return fmt.Errorf("watch %s: %w", reqsPath, err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", reqsPath, err)
	}
	defer watcher.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	printer.Stepf("watching %s for changes (ctrl-c to stop)", reqsPath)
	for {
		select {
		case <-watcher.Changes:
			printer.Stepf("requirements changed, re-running analysis")
			if err := render(); err != nil {
				printer.Errorf("%v", err)
			}
		case <-interrupt:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// renderGuildAnalysis reloads the requirements file and writes the full
// report. The coverage matrix is reused across watch re-runs; only the
// requirements are re-read.
func renderGuildAnalysis(out io.Writer, matrix *platoon.CoverageMatrix, reqsPath, maxPhase string) error {
	reqs, err := platoon.LoadRequirements(reqsPath)
	if err != nil {
		return fmt.Errorf("load requirements: %w", err)
	}
	if maxPhase != "" {
		reqs = reqs.FilterByMaxPhase(maxPhase)
	}

	coverage := platoon.NewCoverageAnalyzer(matrix, reqs)
	gaps := platoon.NewGapAnalyzer(matrix, reqs)
	bottlenecks := platoon.NewBottleneckAnalyzer(matrix, reqs)

	r := report.NewGuildReport()
	fmt.Fprint(out, r.RenderHeader(matrix))
	fmt.Fprintln(out)
	fmt.Fprint(out, r.RenderLocationSummary(coverage.SummaryByLocation()))
	fmt.Fprintln(out)
	fmt.Fprint(out, r.RenderUnitCoverage(matrix, reqs))
	fmt.Fprintln(out)
	fmt.Fprint(out, r.RenderCriticalGaps(gaps.CriticalGaps()))
	fmt.Fprintln(out)
	fmt.Fprint(out, r.RenderGaps(gaps.AllGaps()))
	fmt.Fprintln(out)
	fmt.Fprint(out, r.RenderBottlenecks(bottlenecks.ScarceUnits()))
	return nil
}
