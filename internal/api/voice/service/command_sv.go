package voiceService

import (
	"VirtualMirror/internal/api/voice"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/registry"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *voiceService) RegisterCommand(ctx context.Context, req voice.RegisterCommandRequest) error {
	cmd := entity.RegisteredCommand{
		ID:          req.ID,
		Screen:      req.Screen,
		Patterns:    req.Patterns,
		Description: req.Description,
		ActionType:  req.ActionType,
		Target:      req.Target,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.meta[cmd.ID] = cmd
	s.mu.Unlock()

	s.registry.Register(registry.Command{
		ID:          cmd.ID,
		Screen:      cmd.Screen,
		Patterns:    cmd.Patterns,
		Description: cmd.Description,
		Action: func() {
			s.log.WithFields(logrus.Fields{
				"command_id": cmd.ID,
				"action":     cmd.ActionType,
				"target":     cmd.Target,
			}).Info("Voice command dispatched")
		},
	})

	return nil
}

// UnregisterCommand is a no-op for unknown ids, so screens can blindly clean
// up on blur.
func (s *voiceService) UnregisterCommand(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.meta, id)
	s.mu.Unlock()

	s.registry.Unregister(id)
}

func (s *voiceService) UnregisterScreen(ctx context.Context, screen string) {
	s.mu.Lock()
	for id, cmd := range s.meta {
		if cmd.Screen == screen {
			delete(s.meta, id)
		}
	}
	s.mu.Unlock()

	s.registry.UnregisterScreen(screen)
}

func (s *voiceService) ListCommands(ctx context.Context, screen string) []voice.CommandResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responses := make([]voice.CommandResponse, 0, len(s.meta))
	for _, cmd := range s.registry.Commands() {
		meta, ok := s.meta[cmd.ID]
		if !ok {
			continue
		}
		if screen != "" && meta.Screen != screen {
			continue
		}
		responses = append(responses, voice.CommandResponse{
			ID:          meta.ID,
			Screen:      meta.Screen,
			Patterns:    meta.Patterns,
			Description: meta.Description,
			ActionType:  meta.ActionType,
			Target:      meta.Target,
		})
	}

	return responses
}

func (s *voiceService) GetLastExecuted(ctx context.Context) voice.LastExecutedResponse {
	return voice.LastExecutedResponse{Description: s.registry.LastExecuted()}
}

// seedDefaultVocabulary installs the always-available Spanish commands so the
// mirror responds before any screen registers its own.
func (s *voiceService) seedDefaultVocabulary() {
	defaults := []voice.RegisterCommandRequest{
		{ID: "go-home", Screen: "global", Patterns: []string{"inicio", "pantalla principal"}, Description: "Ir a la pantalla de inicio", ActionType: entity.ActionNavigate, Target: "/home"},
		{ID: "go-back", Screen: "global", Patterns: []string{"volver", "atras", "regresar"}, Description: "Volver a la pantalla anterior", ActionType: entity.ActionNavigate, Target: "back"},
		{ID: "open-tryon", Screen: "global", Patterns: []string{"probador", "probarme ropa"}, Description: "Abrir el probador virtual", ActionType: entity.ActionNavigate, Target: "/try-on"},
		{ID: "open-catalog", Screen: "global", Patterns: []string{"catalogo", "ver ropa"}, Description: "Abrir el catalogo de prendas", ActionType: entity.ActionNavigate, Target: "/catalog"},
		{ID: "open-settings", Screen: "global", Patterns: []string{"ajustes", "configuracion"}, Description: "Abrir los ajustes", ActionType: entity.ActionNavigate, Target: "/settings"},
		{ID: "scroll-down", Screen: "global", Patterns: []string{"baja", "mas abajo"}, Description: "Desplazar hacia abajo", ActionType: entity.ActionScroll, Target: "down"},
		{ID: "scroll-up", Screen: "global", Patterns: []string{"sube", "mas arriba"}, Description: "Desplazar hacia arriba", ActionType: entity.ActionScroll, Target: "up"},
		{ID: "take-photo", Screen: "global", Patterns: []string{"foto", "tomar foto", "capturar"}, Description: "Tomar una foto", ActionType: entity.ActionTrigger, Target: "capture"},
	}

	for _, cmd := range defaults {
		if err := s.RegisterCommand(context.Background(), cmd); err != nil {
			s.log.WithFields(logrus.Fields{
				"command_id": cmd.ID,
				"error":      err.Error(),
			}).Warn("Failed to seed default voice command")
		}
	}
}
