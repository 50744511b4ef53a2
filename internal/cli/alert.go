package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sreepuli/AquaAlert-sub000/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alert",
		Aliases: []string{"alerts"},
		Short:   "Inspect and acknowledge alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertAckCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var (
		severity string
		sensorID string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts, err := apiClient.Alerts().List(context.Background(), &client.AlertListOptions{
				Severity: severity,
				SensorID: sensorID,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(alerts)
			}

			table := NewTable("ID", "SENSOR", "VILLAGE", "SEVERITY", "FINDINGS", "STATUS", "TIME")
			for _, a := range alerts {
				table.AddRow(
					a.ID,
					a.SensorID,
					a.Location.Village,
					formatSeverity(a.Severity),
					fmt.Sprintf("%d", len(a.Findings)),
					formatStatus(a.Status),
					a.Timestamp.Format("2006-01-02 15:04:05"),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity: critical, warning")
	cmd.Flags().StringVar(&sensorID, "sensor", "", "filter by sensor ID")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum alerts to show")

	return cmd
}

func newAlertAckCmd() *cobra.Command {
	var who string

	cmd := &cobra.Command{
		Use:   "ack <alert-id>",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Alerts().Acknowledge(context.Background(), args[0], who)
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(a)
			}
			fmt.Printf("Alert %s acknowledged by %s\n", a.ID, a.AcknowledgedBy)
			return nil
		},
	}

	cmd.Flags().StringVar(&who, "by", "", "name of the acknowledging operator (required)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
