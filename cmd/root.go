package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/calween/opsdeck/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "opsdeck",
	Short: "Terminal assistant for the fleet operations dashboard",
	Long:  `Opsdeck is a terminal chat assistant that answers questions about a fleet of nodes and can stage deployments for explicit confirmation.`,
	Run: func(cmd *cobra.Command, args []string) {
		application, err := app.NewApplication()
		if err != nil {
			log.Fatalf("Failed to create application: %v", err)
		}
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
