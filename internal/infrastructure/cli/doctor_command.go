package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freand76/kalkon/internal/app"
)

func newDoctorCommand(container *app.Container, render *Renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Doctor == nil {
				return fmt.Errorf("doctor service unavailable")
			}
			report := container.Doctor.Run(cmd.Context())
			for _, check := range report.Checks {
				fmt.Fprintln(cmd.OutOrStdout(), render.HealthLine(check))
			}
			if report.Failed() {
				return fmt.Errorf("diagnostics found problems")
			}
			return nil
		},
	}
}
