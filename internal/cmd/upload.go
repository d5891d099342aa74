package cmd

import (
	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document and start a study session",
	Long:  `Upload a PDF, DOCX or TXT document. The new session becomes active.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewUploadService(app).Upload(args[0])
	},
}
