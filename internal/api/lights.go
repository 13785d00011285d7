package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nvoss/lighthald/internal/events"
	"github.com/nvoss/lighthald/internal/hal"
	"github.com/nvoss/lighthald/internal/metrics"
)

// Light request/response models

// ApplyLightRequest applies a state to one logical light.
type ApplyLightRequest struct {
	Name string `path:"name" example:"notifications" doc:"Logical light name"`
	Body struct {
		Color      uint32 `json:"color" example:"16744448" doc:"Packed RGB color; only the low 24 bits are used"`
		Flash      string `json:"flash,omitempty" example:"timed" doc:"Flash mode: none, timed, hardware" enum:"none,timed,hardware"`
		FlashOnMS  uint32 `json:"flash_on_ms,omitempty" example:"500" doc:"Blink on duration in milliseconds"`
		FlashOffMS uint32 `json:"flash_off_ms,omitempty" example:"500" doc:"Blink off duration in milliseconds"`
	}
}

// LightListResponse lists the logical lights this daemon can drive.
type LightListResponse struct {
	Body struct {
		Lights []string `json:"lights" doc:"Supported logical light names"`
	}
}

// parseFlashMode maps the wire name to a hal.FlashMode.
func parseFlashMode(s string) (hal.FlashMode, error) {
	switch s {
	case "", "none":
		return hal.FlashNone, nil
	case "timed":
		return hal.FlashTimed, nil
	case "hardware":
		return hal.FlashHardware, nil
	default:
		return hal.FlashNone, fmt.Errorf("unknown flash mode %q", s)
	}
}

// registerLightRoutes registers light control endpoints.
func (s *Server) registerLightRoutes() {
	// Apply a light state
	huma.Register(s.api, huma.Operation{
		OperationID: "apply-light",
		Method:      http.MethodPost,
		Path:        "/api/lights/{name}",
		Summary:     "Apply Light State",
		Description: "Translate a color and optional flash pattern into control file writes for one logical light",
		Tags:        []string{"lights"},
		Errors:      []int{400, 401, 500},
		Security:    withAuth(),
	}, func(_ context.Context, input *ApplyLightRequest) (*struct{}, error) {
		flash, err := parseFlashMode(input.Body.Flash)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid flash mode", err)
		}

		device, err := s.controller.Open(hal.Light(input.Name))
		if err != nil {
			if errors.Is(err, hal.ErrUnsupportedLight) {
				return nil, huma.Error400BadRequest("Unsupported light", err)
			}
			return nil, huma.Error500InternalServerError("Failed to open light", err)
		}
		defer device.Close()

		state := hal.LightState{
			Color:      input.Body.Color,
			Flash:      flash,
			FlashOnMS:  input.Body.FlashOnMS,
			FlashOffMS: input.Body.FlashOffMS,
		}
		if err := device.Apply(state); err != nil {
			metrics.LightApplies.WithLabelValues(input.Name, "error").Inc()
			return nil, huma.Error500InternalServerError("Failed to apply light state", err)
		}
		metrics.LightApplies.WithLabelValues(input.Name, "ok").Inc()

		if s.eventBus != nil {
			s.eventBus.Publish(events.LightChangedEvent{
				Light:      input.Name,
				Color:      state.Color,
				Flash:      flash.String(),
				FlashOnMS:  state.FlashOnMS,
				FlashOffMS: state.FlashOffMS,
				Timestamp:  time.Now().Format(time.RFC3339),
			})
		}

		return &struct{}{}, nil
	})

	// List supported lights
	huma.Register(s.api, huma.Operation{
		OperationID: "list-lights",
		Method:      http.MethodGet,
		Path:        "/api/lights",
		Summary:     "List Lights",
		Description: "Get the list of logical lights this daemon can drive",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*LightListResponse, error) {
		resp := &LightListResponse{}
		for _, name := range hal.Lights() {
			resp.Body.Lights = append(resp.Body.Lights, string(name))
		}
		return resp, nil
	})

	s.logger.Info("Light routes registered")
}
