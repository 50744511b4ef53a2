package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show monitoring engine summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			status, err := apiClient.Simulation().Status(ctx)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(status)
			}

			fmt.Println("AquaAlert Monitoring")
			fmt.Println(strings.Repeat("=", 40))

			running := "stopped"
			if status.Running {
				running = "running"
			}
			fmt.Printf("  Engine:      %s (%s source, tick %s)\n", formatStatus(running), status.Source, status.TickInterval)
			fmt.Printf("  Sensors:     %d active (%d total)\n", status.ActiveSensors, status.SensorCount)
			fmt.Printf("  Readings:    %d buffered\n", status.BufferedReads)
			fmt.Printf("  Alerts:      %d buffered\n", status.BufferedAlerts)

			alerts, err := apiClient.Alerts().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Recent:      (error: %v)\n", err)
				return nil
			}
			critical := 0
			for _, a := range alerts {
				if a.Severity == "critical" {
					critical++
				}
			}
			fmt.Printf("  Recent:      %d alerts", len(alerts))
			if critical > 0 {
				fmt.Printf(" (%d critical)", critical)
			}
			fmt.Println()

			return nil
		},
	}
}
