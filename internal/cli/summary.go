package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreepuli/AquaAlert-sub000/pkg/client"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Daily digest operations",
	}

	cmd.AddCommand(newSummaryShowCmd())
	cmd.AddCommand(newSummarySendCmd())

	return cmd
}

// summaryWindowFlags parses the optional --start/--end flags into
// client options, nil when neither is set
func summaryWindowFlags(start, end string) (*client.SummaryWindowOptions, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	opts := &client.SummaryWindowOptions{}
	if start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start %q: %w", start, err)
		}
		opts.Start = t
	}
	if end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return nil, fmt.Errorf("invalid --end %q: %w", end, err)
		}
		opts.End = t
	}
	return opts, nil
}

func newSummaryShowCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Preview digest activity, last 24 hours by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := summaryWindowFlags(start, end)
			if err != nil {
				return err
			}
			report, err := apiClient.Summary().Get(context.Background(), opts)
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(report)
			}

			s := report.Stats
			fmt.Printf("Window:    %s to %s\n", s.WindowStart.Format("2006-01-02 15:04"), s.WindowEnd.Format("2006-01-02 15:04"))
			fmt.Printf("Readings:  %d across %d active sensors\n", s.TotalReadings, s.ActiveSensors)
			fmt.Printf("Alerts:    %d total (%d critical, %d warning)\n", s.TotalAlerts, s.CriticalAlerts, s.WarningAlerts)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "window start (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "window end (RFC3339)")

	return cmd
}

func newSummarySendCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the digest email now",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := summaryWindowFlags(start, end)
			if err != nil {
				return err
			}
			stats, err := apiClient.Summary().Send(context.Background(), opts)
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(stats)
			}
			fmt.Printf("Daily summary sent: %d readings, %d alerts\n", stats.TotalReadings, stats.TotalAlerts)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "window start (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "window end (RFC3339)")

	return cmd
}
