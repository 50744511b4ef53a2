package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSensorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sensor",
		Aliases: []string{"sensors"},
		Short:   "Inspect the sensor fleet",
	}

	cmd.AddCommand(newSensorListCmd())
	cmd.AddCommand(newSensorReadingsCmd())

	return cmd
}

func newSensorListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sensors with runtime counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			sensors, err := apiClient.Sensors().List(context.Background())
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(sensors)
			}

			table := NewTable("ID", "NAME", "VILLAGE", "STATUS", "READINGS", "ALERTS", "ABNORMAL")
			for _, s := range sensors {
				table.AddRow(
					s.ID,
					s.Name,
					s.Location.Village,
					formatStatus(s.Status),
					fmt.Sprintf("%d", s.ReadingsTaken),
					fmt.Sprintf("%d", s.AlertsSent),
					fmt.Sprintf("%d", s.ConsecutiveAbnormal),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newSensorReadingsCmd() *cobra.Command {
	var (
		sensorID string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "readings",
		Short: "Show recent readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			readings, err := apiClient.Sensors().Readings(context.Background(), sensorID, limit)
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(readings)
			}

			table := NewTable("SENSOR", "TIME", "PH", "TURBIDITY", "ECOLI", "TDS", "BATTERY", "STATUS")
			for _, r := range readings {
				table.AddRow(
					r.SensorID,
					r.Timestamp.Format("15:04:05"),
					fmt.Sprintf("%.2f", r.Parameters.PH),
					fmt.Sprintf("%.2f", r.Parameters.Turbidity),
					fmt.Sprintf("%.0f", r.Parameters.EColi),
					fmt.Sprintf("%.0f", r.Parameters.TDS),
					fmt.Sprintf("%.0f%%", r.BatteryLevel),
					formatStatus(r.Status),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&sensorID, "sensor", "", "filter by sensor ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum readings to show")

	return cmd
}
