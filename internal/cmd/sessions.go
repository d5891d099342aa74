package cmd

import (
	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var deleteForce bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage study sessions",
	Long:  `List, open, create and delete study sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewSessionService(app).List()
	},
}

var sessionsOpenCmd = &cobra.Command{
	Use:   "open <session-id>",
	Short: "Activate a session and show its transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewSessionService(app).Open(args[0])
	},
}

var sessionsNewChatCmd = &cobra.Command{
	Use:   "new-chat",
	Short: "Start an empty chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewSessionService(app).NewChat()
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its chats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewSessionService(app).Delete(args[0], deleteForce)
	},
}

func init() {
	sessionsDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsOpenCmd)
	sessionsCmd.AddCommand(sessionsNewChatCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
