package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sreepuli/AquaAlert-sub000/pkg/client"
)

func newSimulationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "simulation",
		Aliases: []string{"sim"},
		Short:   "Control the monitoring loop",
	}

	cmd.AddCommand(newSimulationStartCmd())
	cmd.AddCommand(newSimulationStopCmd())
	cmd.AddCommand(newSimulationTestAlertCmd())

	return cmd
}

func newSimulationStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the monitoring loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.Simulation().Start(context.Background())
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(status)
			}
			fmt.Printf("Monitoring started: %d sensors, tick %s\n", status.SensorCount, status.TickInterval)
			return nil
		},
	}
}

func newSimulationStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the monitoring loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.Simulation().Stop(context.Background())
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(status)
			}
			fmt.Println("Monitoring stopped")
			return nil
		},
	}
}

func newSimulationTestAlertCmd() *cobra.Command {
	var (
		sensorID  string
		ph        float64
		ecoli     float64
		turbidity float64
	)

	cmd := &cobra.Command{
		Use:   "test-alert",
		Short: "Inject a synthetic reading through the alert pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.TestAlertRequest{SensorID: sensorID}
			if cmd.Flags().Changed("ph") {
				req.Parameters.PH = &ph
			}
			if cmd.Flags().Changed("ecoli") {
				req.Parameters.EColi = &ecoli
			}
			if cmd.Flags().Changed("turbidity") {
				req.Parameters.Turbidity = &turbidity
			}

			result, err := apiClient.Simulation().TestAlert(context.Background(), req)
			if err != nil {
				return err
			}
			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			fmt.Printf("Alert %s raised (%s), %d recipients notified\n",
				result.Alert.ID, formatSeverity(result.Alert.Severity), result.Recipients)
			for _, f := range result.Alert.Findings {
				fmt.Printf("  %s %s=%.2f: %s\n", f.Kind, f.Parameter, f.Value, f.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sensorID, "sensor", "", "sensor ID (required)")
	cmd.Flags().Float64Var(&ph, "ph", 0, "pH value")
	cmd.Flags().Float64Var(&ecoli, "ecoli", 0, "E.coli count (CFU/100mL)")
	cmd.Flags().Float64Var(&turbidity, "turbidity", 0, "turbidity (NTU)")
	_ = cmd.MarkFlagRequired("sensor")

	return cmd
}
