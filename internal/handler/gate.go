package handler

import (
	"encoding/json"
	"net/http"

	"gametopup-rest-api/internal/service"
	"gametopup-rest-api/pkg/apierror"
	"gametopup-rest-api/pkg/response"
)

// GateHandler handles the account-check passthrough.
type GateHandler struct {
	gate *service.GateService
}

// NewGateHandler creates a new gate handler.
func NewGateHandler(gate *service.GateService) *GateHandler {
	return &GateHandler{gate: gate}
}

// Check handles POST /api/v1/check. The upstream status and body are relayed
// verbatim.
func (h *GateHandler) Check(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	status, upstreamBody, err := h.gate.Check(r.Context(), body)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, status, upstreamBody)
}

// decodeBody parses a JSON request body into an open map. UseNumber keeps
// numeric ids exact when they are re-encoded into upstream query strings.
func decodeBody(r *http.Request) (map[string]interface{}, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
