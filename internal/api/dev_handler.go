package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "scholar-ai/backend/internal/errors"
	"scholar-ai/backend/internal/interfaces"
	"scholar-ai/backend/internal/modes"
)

// developerCodeHeader carries the passcode on gated routes. This is a UI
// speed bump for the developer panel, not a security control.
const developerCodeHeader = "X-Developer-Code"

// DevHandler handles the developer panel surface: the passcode gate and
// per-mode instruction overrides.
type DevHandler struct {
	instructions interfaces.InstructionService
	code         string
}

func NewDevHandler(instructions interfaces.InstructionService, code string) *DevHandler {
	return &DevHandler{instructions: instructions, code: code}
}

// RequireCode is middleware guarding the instruction-override routes.
func (h *DevHandler) RequireCode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subtle.ConstantTimeCompare([]byte(r.Header.Get(developerCodeHeader)), []byte(h.code)) != 1 {
			respondWithError(w, fmt.Errorf("%w: developer code required", app_errors.ErrPermission))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleUnlock godoc
// @Summary      Check the developer passcode
// @Tags         Developer
// @Accept       json
// @Produce      json
// @Param        unlock  body      UnlockRequest  true  "Passcode"
// @Success      200     {object}  StatusResponse
// @Failure      403     {object}  ErrorResponse
// @Router       /v1/developer/unlock [post]
func (h *DevHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(h.code)) != 1 {
		respondWithError(w, fmt.Errorf("%w: wrong developer code", app_errors.ErrPermission))
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleListModes godoc
// @Summary      List modes
// @Description  Returns the compiled-in mode registry in display order.
// @Tags         Modes
// @Produce      json
// @Success      200  {array}  modes.Config
// @Router       /v1/modes [get]
func (h *DevHandler) HandleListModes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.instructions.Modes())
}

// HandleGetInstruction godoc
// @Summary      Get a mode's effective instruction
// @Tags         Developer
// @Produce      json
// @Param        modeID  path      string  true  "Mode ID"
// @Success      200     {object}  service.InstructionView
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/developer/modes/{modeID}/instruction [get]
func (h *DevHandler) HandleGetInstruction(w http.ResponseWriter, r *http.Request) {
	mode := modes.ID(chi.URLParam(r, "modeID"))
	view, err := h.instructions.View(r.Context(), mode)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// HandleSaveInstruction godoc
// @Summary      Save a mode's instruction override
// @Tags         Developer
// @Accept       json
// @Produce      json
// @Param        modeID       path      string                  true  "Mode ID"
// @Param        instruction  body      SaveInstructionRequest  true  "Override text"
// @Success      200          {object}  StatusResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      404          {object}  ErrorResponse
// @Router       /v1/developer/modes/{modeID}/instruction [put]
func (h *DevHandler) HandleSaveInstruction(w http.ResponseWriter, r *http.Request) {
	mode := modes.ID(chi.URLParam(r, "modeID"))

	var req SaveInstructionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.instructions.Save(r.Context(), mode, req.Instruction); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleResetInstruction godoc
// @Summary      Reset a mode's instruction to the registry default
// @Tags         Developer
// @Produce      json
// @Param        modeID  path      string  true  "Mode ID"
// @Success      200     {object}  StatusResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/developer/modes/{modeID}/instruction [delete]
func (h *DevHandler) HandleResetInstruction(w http.ResponseWriter, r *http.Request) {
	mode := modes.ID(chi.URLParam(r, "modeID"))
	if err := h.instructions.Reset(r.Context(), mode); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
