package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	apperrors "github.com/wallet-persona/internal/errors"
	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/service"
)

const dateParamLayout = "2006-01-02"

// handleBuildPersona handles POST /api/wallets/{address}/persona requests.
func (s *Server) handleBuildPersona(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	input, err := parsePersonaInput(r)
	if err != nil {
		respondCategorized(w, err)
		return
	}

	result, err := s.personaService.BuildPersona(r.Context(), input)
	if err != nil {
		logger.WithError(err).WithField("address", input.Address).Error("Persona build failed")
		respondCategorized(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleGetAnalysis handles GET /api/wallets/{address}/analysis requests.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	input, err := parsePersonaInput(r)
	if err != nil {
		respondCategorized(w, err)
		return
	}

	result, err := s.personaService.AnalyzeTransactions(r.Context(), input)
	if err != nil {
		logger.WithError(err).WithField("address", input.Address).Error("Analysis failed")
		respondCategorized(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parsePersonaInput extracts the address path variable and the optional
// from/to date range query parameters.
func parsePersonaInput(r *http.Request) (*service.PersonaInput, error) {
	vars := mux.Vars(r)
	address := vars["address"]
	if address == "" {
		return nil, apperrors.NewInvalidAddressError(address)
	}

	input := &service.PersonaInput{Address: address}

	from, err := parseDateParam(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, apperrors.NewInvalidParameterError("from", "must not be after to")
	}

	input.StartDate = from
	input.EndDate = to
	return input, nil
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateParamLayout, raw)
	if err != nil {
		return nil, apperrors.NewInvalidParameterError(name, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
