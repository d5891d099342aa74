package service

import (
	"context"
	"fmt"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/formatter"
)

// StudyService drives the focus-timer endpoints
type StudyService struct {
	app *App
}

// NewStudyService creates a new study service
func NewStudyService(app *App) *StudyService {
	return &StudyService{app: app}
}

func (s *StudyService) sessionID(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if id := s.app.Store.ActiveSessionID(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no active session; pass --session or open one first")
}

// Start begins a focus session
func (s *StudyService) Start(sessionOverride string) error {
	if err := s.app.RequireCredential(context.Background()); err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	id, err := s.sessionID(sessionOverride)
	if err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	if err := s.app.Store.StartFocusSession(id); err != nil {
		formatter.PrintError("Failed to start focus session: %v", err)
		return err
	}

	s.app.Store.SetMode(api.ModeStudy)
	formatter.PrintSuccess("Focus session started. Stay on it!")
	return nil
}

// End finishes a focus session and reports the earned XP
func (s *StudyService) End(sessionOverride string) error {
	if err := s.app.RequireCredential(context.Background()); err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	id, err := s.sessionID(sessionOverride)
	if err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	resp, err := s.app.Store.CompleteFocusSession(id)
	if err != nil {
		formatter.PrintError("Failed to end focus session: %v", err)
		return err
	}

	xp, coins, streak := s.app.Store.Progress()
	formatter.PrintSuccess("Focus session complete! XP is now %d", resp.NewXP)
	formatter.PrintKeyValue(map[string]interface{}{
		"XP":     xp,
		"Coins":  coins,
		"Streak": streak,
	})
	return nil
}
