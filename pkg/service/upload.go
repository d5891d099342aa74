package service

import (
	"os"
	"path/filepath"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/errors"
	"github.com/akili-ai/akili-cli/pkg/formatter"
)

// UploadService uploads documents and starts study sessions from them
type UploadService struct {
	app *App
}

// NewUploadService creates a new upload service
func NewUploadService(app *App) *UploadService {
	return &UploadService{app: app}
}

// Upload sends one document to the backend and activates the session
// the server creates for it.
func (s *UploadService) Upload(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		cliErr := errors.FileNotFoundError(filePath)
		formatter.PrintError("%s", cliErr.Message)
		return cliErr
	}
	if !api.IsAcceptedDocument(filePath) {
		cliErr := errors.DocumentFormatError(filepath.Ext(filePath))
		formatter.PrintError("%s", cliErr.Message)
		return cliErr
	}

	formatter.PrintInfo("Uploading %s...", filepath.Base(filePath))
	info, err := s.app.Store.UploadDocument(filePath)
	if err != nil {
		formatter.PrintError("%s", s.app.Store.UploadError())
		return err
	}

	formatter.PrintSuccess("Session %s started for %s", info.ID, info.DocumentName)
	if transcript, ok := s.app.Store.Transcript(info.ID); ok && len(transcript) > 0 {
		printMessage(transcript[0])
	}
	return nil
}
