package cmd

import (
	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Sign in, sign out and decide what happens to guest data.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(app).Login(cmd.Context())
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and reset local state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(app).Logout(cmd.Context())
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(app).WhoAmI()
	},
}

var authMergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge pending guest data into your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(app).Merge()
	},
}

var authDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard pending guest data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(app).Discard()
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authMergeCmd)
	authCmd.AddCommand(authDiscardCmd)
}
