package cmd

import (
	"strings"

	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with Akili about the active session",
	Long: `Send one message to the active session, or start an interactive
loop when no message is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewChatService(app)
		if len(args) == 0 {
			return svc.Interactive()
		}
		return svc.Send(strings.Join(args, " "))
	},
}
