package service

import (
	"fmt"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/formatter"
	"github.com/akili-ai/akili-cli/pkg/prompter"
)

// SessionService drives the session list and transcripts
type SessionService struct {
	app *App
}

// NewSessionService creates a new session service
func NewSessionService(app *App) *SessionService {
	return &SessionService{app: app}
}

// List fetches and prints the session list, newest first
func (s *SessionService) List() error {
	if err := s.app.Store.FetchSessions(); err != nil {
		formatter.PrintError("Failed to fetch sessions: %v", err)
		return err
	}

	sessions := s.app.Store.Sessions()
	if len(sessions) == 0 {
		formatter.PrintInfo("No sessions yet. Upload a document to get started.")
		return nil
	}

	active := s.app.Store.ActiveSessionID()
	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		marker := ""
		if sess.ID == active {
			marker = "*"
		}
		rows = append(rows, []string{marker, sess.ID, sess.DocumentName, sess.Mode, sess.CreatedAt})
	}

	formatter.PrintTable(sessions, []string{"", "ID", "Document", "Mode", "Created"}, rows)
	return nil
}

// Open activates a session and prints its transcript
func (s *SessionService) Open(id string) error {
	if err := s.app.Store.FetchSessions(); err != nil {
		formatter.PrintError("Failed to fetch sessions: %v", err)
		return err
	}

	if err := s.app.Store.SetActiveSession(id); err != nil {
		formatter.PrintError("Failed to load session: %v", err)
		return err
	}

	if s.app.Store.ActiveSessionID() != id {
		formatter.PrintError("No such session: %s", id)
		return fmt.Errorf("unknown session %s", id)
	}

	s.PrintTranscript(id)
	return nil
}

// PrintTranscript renders one session's cached transcript
func (s *SessionService) PrintTranscript(id string) {
	transcript, ok := s.app.Store.Transcript(id)
	if !ok {
		formatter.PrintInfo("Transcript not loaded.")
		return
	}
	if len(transcript) == 0 {
		formatter.PrintInfo("No messages yet.")
		return
	}

	for _, msg := range transcript {
		printMessage(msg)
	}
}

func printMessage(msg api.ChatMessage) {
	switch msg.Role {
	case api.RoleUser:
		formatter.Bold.Println("you:")
	default:
		formatter.Info.Println("akili:")
	}
	fmt.Println(msg.Text)
	fmt.Println()
}

// NewChat provisions and activates an empty chat session
func (s *SessionService) NewChat() error {
	info, err := s.app.Store.CreateNewChatSession()
	if err != nil {
		formatter.PrintError("Failed to create chat session: %v", err)
		return err
	}

	formatter.PrintSuccess("Started chat session %s", info.ID)
	return nil
}

// Delete removes a session after confirmation
func (s *SessionService) Delete(id string, skipConfirm bool) error {
	if !skipConfirm {
		confirm, err := prompter.PromptConfirm(fmt.Sprintf("Delete session %s and its chats?", id))
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	if err := s.app.Store.ClearSession(id); err != nil {
		// Deliberately no local removal on failure; the list stays intact
		formatter.PrintError("Failed to delete session: %v", err)
		return err
	}

	formatter.PrintSuccess("Session deleted")
	return nil
}
