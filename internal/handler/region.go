package handler

import (
	"errors"
	"net/http"

	"gametopup-rest-api/internal/service"
	"gametopup-rest-api/pkg/response"
)

// RegionHandler handles the region-check passthrough.
//
// This endpoint ALWAYS returns HTTP 200 and signals failure through the
// success field with data null. That contract differs from the rest of the
// API and is kept as-is for client compatibility.
type RegionHandler struct {
	gate *service.GateService
}

// NewRegionHandler creates a new region handler.
func NewRegionHandler(gate *service.GateService) *RegionHandler {
	return &RegionHandler{gate: gate}
}

// CheckRegion handles POST /api/v1/check-region.
func (h *RegionHandler) CheckRegion(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		response.Always200(w, false, "Missing required fields", nil)
		return
	}

	result, err := h.gate.CheckRegion(r.Context(), body)
	if err != nil {
		if errors.Is(err, service.ErrMissingRegionFields) {
			response.Always200(w, false, "Missing required fields", nil)
			return
		}
		response.Always200(w, false, "Internal server error", nil)
		return
	}

	response.Always200(w, true, "Region checked successfully", result)
}
