package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scholar-ai/backend/internal/modes"
	"scholar-ai/backend/internal/repository"
)

// overrideKeyPrefix matches the key shape the developer panel has always
// used, so existing stores keep working.
const overrideKeyPrefix = "custom_instruction_"

// InstructionView is the developer panel's picture of one mode's effective
// instruction.
type InstructionView struct {
	Mode        modes.ID `json:"mode"`
	Instruction string   `json:"instruction"`
	IsOverride  bool     `json:"is_override"`
}

// InstructionService resolves the effective system instruction for a mode:
// a saved override when one exists and is non-empty, else the registry
// default. The store is injected so tests can substitute an in-memory map.
type InstructionService struct {
	store repository.SettingsStore
}

func NewInstructionService(store repository.SettingsStore) *InstructionService {
	return &InstructionService{store: store}
}

// Modes lists the registered mode configs in display order.
func (s *InstructionService) Modes() []modes.Config {
	return modes.List()
}

// Resolve returns the instruction that will be sent with the next request in
// the given mode. Instruction content is passed to the engine verbatim; the
// developer gate is the only guard on what goes in.
func (s *InstructionService) Resolve(ctx context.Context, mode modes.ID) (string, error) {
	view, err := s.View(ctx, mode)
	if err != nil {
		return "", err
	}
	return view.Instruction, nil
}

// View resolves like Resolve but also reports whether an override is active.
func (s *InstructionService) View(ctx context.Context, mode modes.ID) (*InstructionView, error) {
	cfg, err := modes.Lookup(mode)
	if err != nil {
		return nil, err
	}

	override, err := s.store.Get(ctx, overrideKey(mode))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &InstructionView{Mode: mode, Instruction: cfg.DefaultInstruction}, nil
		}
		return nil, fmt.Errorf("could not read instruction override: %w", err)
	}
	if override == "" {
		return &InstructionView{Mode: mode, Instruction: cfg.DefaultInstruction}, nil
	}
	return &InstructionView{Mode: mode, Instruction: override, IsOverride: true}, nil
}

// Save writes an override unconditionally. Empty text is still a meaningful
// override to the store; Resolve treats it as absent.
func (s *InstructionService) Save(ctx context.Context, mode modes.ID, text string) error {
	if _, err := modes.Lookup(mode); err != nil {
		return err
	}
	if err := s.store.Set(ctx, overrideKey(mode), text); err != nil {
		return fmt.Errorf("could not save instruction override: %w", err)
	}
	slog.Info("Saved instruction override", "mode", mode)
	return nil
}

// Reset deletes the override so Resolve falls back to the registry default.
func (s *InstructionService) Reset(ctx context.Context, mode modes.ID) error {
	if _, err := modes.Lookup(mode); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, overrideKey(mode)); err != nil {
		return fmt.Errorf("could not reset instruction override: %w", err)
	}
	slog.Info("Reset instruction override", "mode", mode)
	return nil
}

func overrideKey(mode modes.ID) string {
	return overrideKeyPrefix + string(mode)
}
