package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpgo/asset-projector/internal/calculation"
	"github.com/rpgo/asset-projector/internal/config"
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/internal/output"
	"github.com/shopspring/decimal"
)

// investmentRequest is an investment record plus the externally linked
// cash flows, one per projection year.
type investmentRequest struct {
	config.InvestmentRecord
	LinkedCashFlows []decimal.Decimal `json:"linkedCashFlows"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.sendJSONError(w, fmt.Sprintf("failed to read request body: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (s *Server) portfolioHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	p, err := s.parser.Parse(body)
	if err != nil {
		s.sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := s.cached(w, "portfolio", p, func() (any, error) {
		return s.engine.RunPortfolio(r.Context(), p)
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, calculation.ErrDuplicateID):
			status = http.StatusBadRequest
		case r.Context().Err() != nil:
			status = http.StatusServiceUnavailable
		}
		s.sendJSONError(w, err.Error(), status)
		return
	}
	res := v.(*domain.PortfolioProjection)

	if path := r.URL.Query().Get("select"); path != "" {
		selected, err := output.Select(res, path)
		if err != nil {
			s.sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeJSON(w, http.StatusOK, selected)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) investmentHandler(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	inv := config.FromInvestmentRecord(req.InvestmentRecord)
	input := struct {
		Investment      domain.Investment
		LinkedCashFlows []decimal.Decimal
	}{inv, req.LinkedCashFlows}
	v, _ := s.cached(w, "investment", input, func() (any, error) {
		return s.engine.ProjectInvestmentEntity(inv, req.LinkedCashFlows), nil
	})
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) propertyHandler(w http.ResponseWriter, r *http.Request) {
	var rec config.PropertyRecord
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&rec); err != nil {
		s.sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	prop := config.FromPropertyRecord(rec)
	v, _ := s.cached(w, "property", prop, func() (any, error) {
		return s.engine.ProjectPropertyEntity(prop), nil
	})
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	rec, err := s.parser.ParseRecord(body)
	if err != nil {
		s.sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := config.FromPortfolioRecord(*rec)
	if err != nil {
		s.sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, calculation.ValidatePortfolio(p))
}
