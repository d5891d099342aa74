package cmd

import (
	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var studySessionID string

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Track focus sessions",
	Long:  `Start and end focus sessions to earn XP, coins and streaks.`,
}

var studyStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewStudyService(app).Start(studySessionID)
	},
}

var studyEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End a focus session and collect rewards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewStudyService(app).End(studySessionID)
	},
}

func init() {
	studyCmd.PersistentFlags().StringVar(&studySessionID, "session", "", "Session ID (default: the active session)")

	studyCmd.AddCommand(studyStartCmd)
	studyCmd.AddCommand(studyEndCmd)
}
