package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/akili-ai/akili-cli/pkg/errors"
	"github.com/akili-ai/akili-cli/pkg/identity"
	"github.com/akili-ai/akili-cli/pkg/logger"
	"github.com/akili-ai/akili-cli/pkg/output"
	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string

	app *service.App
)

var rootCmd = &cobra.Command{
	Use:   "akili",
	Short: "Akili CLI - AI study assistant",
	Long: `Akili CLI is a command-line client for the Akili study
assistant. Upload documents, get summaries and quizzes, chat about the
material and track your study progress from the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize config and logger
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			fmt.Fprintf(os.Stderr, "Error: invalid output format %q\n", outputFmt)
			os.Exit(1)
		}
		config.Set("output.format", outputFmt)

		client.Init()

		var err error
		app, err = service.NewApp(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// A 401 on an authenticated identity means the provider session
		// died under us; say that instead of the raw status.
		if api.IsUnauthorized(err) && app != nil && app.Resolver.State() == identity.StateAuthenticated {
			err = errors.SessionExpiredError()
		}
		fmt.Fprint(os.Stderr, errors.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/akili/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
