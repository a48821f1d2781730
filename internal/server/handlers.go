package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/raphaelgruber/pinroute/internal/models"
	"github.com/raphaelgruber/pinroute/internal/routing"
	"github.com/raphaelgruber/pinroute/internal/service"
	"github.com/samber/lo"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// Address is an office as shown to API clients.
type Address struct {
	OfficeName string `json:"officeName"`
	Pincode    string `json:"pincode"`
	District   string `json:"district"`
	State      string `json:"state,omitempty"`
	OfficeType string `json:"officeType,omitempty"`
}

// Alternative is a suggested office with its confidence.
type Alternative struct {
	OfficeName string `json:"officeName"`
	Pincode    string `json:"pincode"`
	District   string `json:"district"`
	Confidence int    `json:"confidence"`
}

// ValidateResponse is the body of POST /api/address/validate.
type ValidateResponse struct {
	Success          bool          `json:"success"`
	Confidence       int           `json:"confidence,omitempty"`
	CorrectedAddress *Address      `json:"correctedAddress,omitempty"`
	Alternatives     []Alternative `json:"alternatives"`
	Message          string        `json:"message"`
}

// SearchResponse is the body of GET /api/address/search/{query}.
type SearchResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Results []Address `json:"results"`
}

// Route is a planned route as shown to API clients.
type Route struct {
	Source        service.Endpoint `json:"source"`
	Destination   service.Endpoint `json:"destination"`
	Path          []routing.Leg    `json:"path"`
	TotalDistance int64            `json:"totalDistance"`
	EstimatedTime int64            `json:"estimatedTime"`
	NumberOfHops  int              `json:"numberOfHops"`
	Message       string           `json:"message,omitempty"`
}

// RouteResponse is the body of POST /api/routing/calculate.
type RouteResponse struct {
	Success bool   `json:"success"`
	Route   *Route `json:"route,omitempty"`
	Message string `json:"message,omitempty"`
}

// HubsResponse is the body of GET /api/routing/hubs.
type HubsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Hubs    []service.HubInfo `json:"hubs"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func toAddress(l models.Locality) Address {
	return Address{
		OfficeName: l.OfficeName,
		Pincode:    l.Pincode,
		District:   l.District,
		State:      l.State,
		OfficeType: string(l.OfficeType),
	}
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req service.ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	v, err := s.addresses.Validate(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrMissingInput):
		s.writeError(w, r, http.StatusBadRequest, "Please provide either address or PIN code", nil)
		return
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, "Server error during address validation", err)
		return
	}

	resp := ValidateResponse{
		Success:    v.Found,
		Confidence: v.Confidence,
		Message:    v.Message,
		Alternatives: lo.Map(v.Alternatives, func(a service.Suggestion, _ int) Alternative {
			return Alternative{
				OfficeName: a.Locality.OfficeName,
				Pincode:    a.Locality.Pincode,
				District:   a.Locality.District,
				Confidence: a.Confidence,
			}
		}),
	}
	if v.Locality != nil {
		addr := toAddress(*v.Locality)
		resp.CorrectedAddress = &addr
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.addresses.Search(r.Context(), r.PathValue("query"))
	switch {
	case errors.Is(err, service.ErrQueryTooShort):
		s.writeError(w, r, http.StatusBadRequest, "Search query must be at least 2 characters", nil)
		return
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, "Server error during search", err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, SearchResponse{
		Success: true,
		Count:   len(results),
		Results: lo.Map(results, func(l models.Locality, _ int) Address { return toAddress(l) }),
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req service.RouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	plan, err := s.routes.Plan(req)
	switch {
	case errors.Is(err, service.ErrUnmappedDistrict):
		s.writeError(w, r, http.StatusBadRequest,
			"Could not determine hubs for given districts. Available districts: "+strings.Join(s.routes.Districts(), ", "), nil)
		return
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, "Server error during route calculation", err)
		return
	}

	if !plan.Found {
		s.writeJSON(w, r, http.StatusOK, RouteResponse{Success: false, Message: plan.Message})
		return
	}

	s.writeJSON(w, r, http.StatusOK, RouteResponse{
		Success: true,
		Route: &Route{
			Source:        plan.Source,
			Destination:   plan.Destination,
			Path:          plan.Summary.Legs,
			TotalDistance: plan.Summary.TotalDistance,
			EstimatedTime: plan.Summary.EstimatedMinutes,
			NumberOfHops:  plan.Summary.Hops,
			Message:       plan.Message,
		},
	})
}

func (s *Server) handleHubs(w http.ResponseWriter, r *http.Request) {
	hubs := s.routes.Hubs()
	s.writeJSON(w, r, http.StatusOK, HubsResponse{Success: true, Count: len(hubs), Hubs: hubs})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.metrics.Snapshot())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "path", r.URL.Path, "error", err)
	}
}

// writeError writes an ErrorResponse. err is logged, and exposed to the
// client only for server errors.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	resp := ErrorResponse{Success: false, Message: msg}
	if err != nil {
		s.logger.Warn(msg, "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		if status >= http.StatusInternalServerError {
			resp.Error = err.Error()
		}
	}
	s.writeJSON(w, r, status, resp)
}
