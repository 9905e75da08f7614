// Package modes holds the compiled-in registry of research personas. Each
// mode pairs a display identity with the default system instruction sent to
// the engine for that persona.
package modes

import (
	"fmt"

	app_errors "scholar-ai/backend/internal/errors"
)

// ID names a registered mode.
type ID string

const (
	General   ID = "general"
	Reviewer  ID = "reviewer"
	Writer    ID = "writer"
	Analyst   ID = "analyst"
	Humanizer ID = "humanizer"
)

// Config is the static description of one mode. The registry is loaded once
// at process start and never mutated.
type Config struct {
	ID                 ID      `json:"id"`
	Title              string  `json:"title"`
	Icon               string  `json:"icon"`
	Description        string  `json:"description"`
	DefaultInstruction string  `json:"default_instruction"`
	Temperature        float32 `json:"temperature"`
}

var registry = []Config{
	{
		ID:          General,
		Title:       "Academic Lab",
		Icon:        "fa-solid fa-microscope",
		Description: "In-depth research with trusted sources and eloquent human phrasing.",
		DefaultInstruction: "You are a professor and specialized academic expert.\n" +
			"1. Reliability: always provide accurate information backed by real sources.\n" +
			"2. Human style: write in a voice that does not read as machine-generated.\n" +
			"3. Sources: include links to trustworthy references.",
		Temperature: 0.6,
	},
	{
		ID:                 Reviewer,
		Title:              "Peer Review",
		Icon:               "fa-solid fa-stamp",
		Description:        "Reviews research, offers constructive criticism and improves references.",
		DefaultInstruction: "You are an international scientific referee. Review the methodology and logical coherence of the work.",
		Temperature:        0.6,
	},
	{
		ID:                 Writer,
		Title:              "Academic Writer",
		Icon:               "fa-solid fa-pen-nib",
		Description:        "Drafts and polishes academic prose with precise citations.",
		DefaultInstruction: "You are an experienced academic writer. Produce clear, well-structured scholarly prose with accurate citations.",
		Temperature:        0.6,
	},
	{
		ID:                 Analyst,
		Title:              "Data Analyst",
		Icon:               "fa-solid fa-chart-mixed",
		Description:        "Precise statistical and mathematical analysis of files and data.",
		DefaultInstruction: "You are an academic data analyst. Extract patterns and provide statistical insight.",
		Temperature:        0.6,
	},
	{
		ID:                 Humanizer,
		Title:              "Human Simulator",
		Icon:               "fa-solid fa-user-pen",
		Description:        "Transforms text to read fully human and pass automated detection.",
		DefaultInstruction: "You are an expert in linguistics and humanizing text. Transform the given text so it reads as if written by hand.",
		Temperature:        0.9,
	},
}

// List returns all registered modes in display order.
func List() []Config {
	out := make([]Config, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the config for the given mode ID.
func Lookup(id ID) (Config, error) {
	for _, c := range registry {
		if c.ID == id {
			return c, nil
		}
	}
	return Config{}, fmt.Errorf("%w: unknown mode %q", app_errors.ErrNotFound, id)
}

// Valid reports whether id names a registered mode.
func Valid(id ID) bool {
	_, err := Lookup(id)
	return err == nil
}
