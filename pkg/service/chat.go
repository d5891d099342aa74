package service

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/formatter"
)

// ChatService sends chat turns against the active session
type ChatService struct {
	app *App
}

// NewChatService creates a new chat service
func NewChatService(app *App) *ChatService {
	return &ChatService{app: app}
}

// Send sends one message and prints the model's reply
func (s *ChatService) Send(text string) error {
	err := s.app.Store.SendChatMessage(text)
	if chatErr := s.app.Store.ChatError(); chatErr != "" {
		formatter.PrintError("%s", chatErr)
	}
	if err != nil {
		return err
	}

	transcript := s.app.Store.ActiveTranscript()
	if len(transcript) > 0 {
		printMessage(transcript[len(transcript)-1])
	}
	return nil
}

// Interactive runs a read-send-print loop until /quit
func (s *ChatService) Interactive() error {
	if s.app.Store.ActiveSessionID() == "" {
		formatter.PrintError("No active session. Open one with 'akili sessions open' or upload a document.")
		return fmt.Errorf("no active session")
	}

	formatter.PrintInfo("Chatting with Akili. Type /quit to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		formatter.Bold.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		if err := s.app.Store.SendChatMessage(line); err != nil {
			continue // the banner already carries the failure
		}

		transcript := s.app.Store.ActiveTranscript()
		if len(transcript) > 0 {
			last := transcript[len(transcript)-1]
			if last.Role == api.RoleModel {
				printMessage(last)
			}
		}
	}
}
