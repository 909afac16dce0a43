package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/progress"
)

func newProgressCmd(a *app) *cobra.Command {
	var (
		tz     string
		now    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print how far through the year it is",
		Long: `Print the year-progress figures a wallpaper would show: day of year,
days remaining and percentage passed, in the given timezone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, rejected := config.ResolveTimezone(tz, hostTimezone())
			for _, r := range rejected {
				a.logger.Warn("ignoring unrecognised timezone", "timezone", r)
			}

			at := time.Now()
			if now != "" {
				var err error
				if at, err = time.Parse(time.RFC3339, now); err != nil {
					return fmt.Errorf("invalid --now value: %w", err)
				}
			}

			facts, err := progress.Compute(at, zone)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(facts)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Timezone:\t%s\n", zone)
			fmt.Fprintf(tw, "Date:\t%s, %s\n", facts.Date, facts.Time)
			fmt.Fprintf(tw, "Day:\t%d of %d\n", facts.DayOfYear, facts.TotalDays)
			fmt.Fprintf(tw, "Remaining:\t%d\n", facts.DaysRemaining)
			fmt.Fprintf(tw, "Passed:\t%s%%\n", facts.Percentage)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone (default: host timezone, then UTC)")
	cmd.Flags().StringVar(&now, "now", "", "use this RFC3339 instant instead of the current time")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
