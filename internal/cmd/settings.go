package cmd

import (
	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/akili-ai/akili-cli/pkg/errors"
	"github.com/akili-ai/akili-cli/pkg/formatter"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user settings",
	Long:  `Configure user preferences stored in the config file.`,
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the UI theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			formatter.PrintInfo("Theme: %s", config.GetString("ui.theme"))
			return nil
		}

		theme := args[0]
		if theme != "dark" && theme != "light" {
			return errors.ValidationError("theme", "must be dark or light")
		}

		if err := config.SetString("ui.theme", theme); err != nil {
			return err
		}
		formatter.PrintSuccess("Theme set to %s", theme)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsThemeCmd)
}
