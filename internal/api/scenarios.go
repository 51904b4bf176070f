package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/store"
	"github.com/sells-group/roi-cli/internal/taxonomy"
	"github.com/sells-group/roi-cli/internal/validate"
)

type scenarioRequest struct {
	Name   string        `json:"name"`
	Inputs validate.Form `json:"inputs"`
}

// inputs validates the request and returns engine inputs or user messages.
func (req scenarioRequest) inputs() (model.CalculatorInputs, []string) {
	in, msgs := validate.ToInputs(req.Inputs)
	if req.Name == "" {
		msgs = append([]string{"Please name the scenario."}, msgs...)
	}
	return in, msgs
}

// canonical stores a taxonomy selection under its path key so saved
// scenarios can be filtered by path.
func (s *Server) canonical(in model.CalculatorInputs) model.CalculatorInputs {
	if in.Path == "" && in.Triple != nil {
		if key, ok := s.eng.Resolver().Resolve(*in.Triple); ok {
			in.Path, in.Triple = key, nil
		}
	}
	return in
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ScenarioFilter{Path: q.Get("path")}
	var err error
	if v := q.Get("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil || filter.Limit < 0 {
			respondError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil || filter.Offset < 0 {
			respondError(w, r, http.StatusBadRequest, "invalid offset")
			return
		}
	}

	list, err := s.store.ListScenarios(r.Context(), filter)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	if list == nil {
		list = []model.Scenario{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	in, msgs := req.inputs()
	if len(msgs) > 0 {
		respondError(w, r, http.StatusBadRequest, "invalid input", msgs...)
		return
	}

	sc, err := s.store.CreateScenario(r.Context(), req.Name, s.canonical(in))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sc)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScenario(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	in, msgs := req.inputs()
	if len(msgs) > 0 {
		respondError(w, r, http.StatusBadRequest, "invalid input", msgs...)
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.UpdateScenario(r.Context(), id, req.Name, s.canonical(in)); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.handleGetScenario(w, r)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteScenario(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runResponse is a re-run scenario with its picker state re-hydrated.
type runResponse struct {
	Scenario  *model.Scenario          `json:"scenario"`
	Selection *taxonomy.Selection      `json:"selection,omitempty"`
	Result    *model.CalculationResult `json:"result"`
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScenario(w, r)
	if !ok {
		return
	}
	res, err := s.eng.Calculate(sc.Inputs)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	out := runResponse{Scenario: sc, Result: res}
	if sel, ok := s.eng.Resolver().SelectionFromKey(sc.Inputs.Path); ok {
		out.Selection = &sel
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) loadScenario(w http.ResponseWriter, r *http.Request) (*model.Scenario, bool) {
	sc, err := s.store.GetScenario(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondStoreError(w, r, err)
		return nil, false
	}
	return sc, true
}

func (s *Server) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if eris.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "scenario not found")
		return
	}
	respondInternal(w, r, err)
}
