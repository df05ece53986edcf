package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assessctl",
		Short: "Run founder interview assessments from the command line",
		Long: `assessctl runs the founder interview assessment pipeline locally.

It reads the same environment as the HTTP server (a .env file in the working
directory is honoured) and prints the formatted report to stdout.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a missing .env is fine, the process environment still applies
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCheckConfigCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
