package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/validate"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.eng.Resolver().Tree())
}

func (s *Server) handlePaths(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.eng.Dataset().Paths())
}

type pathResponse struct {
	model.EducationPath
	Triple model.Triple `json:"triple"`
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	p, ok := s.eng.Dataset().Path(key)
	if !ok {
		respondError(w, r, http.StatusNotFound, "unknown path "+key)
		return
	}
	triple, _ := s.eng.Resolver().Unresolve(key)
	respondJSON(w, http.StatusOK, pathResponse{EducationPath: p, Triple: triple})
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var form validate.Form
	if err := decodeJSON(w, r, &form); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	msgs := validate.Check(form)
	if msgs == nil {
		msgs = []string{}
	}
	respondJSON(w, http.StatusOK, validateResponse{Valid: len(msgs) == 0, Errors: msgs})
}

// calculateResponse wraps the result so an unresolved path is an explicit
// null rather than an error.
type calculateResponse struct {
	Result *model.CalculationResult `json:"result"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var form validate.Form
	if err := decodeJSON(w, r, &form); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	in, msgs := validate.ToInputs(form)
	if len(msgs) > 0 {
		respondError(w, r, http.StatusBadRequest, "invalid input", msgs...)
		return
	}

	res, err := s.eng.Calculate(in)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, calculateResponse{Result: res})
}

type compareRequest struct {
	A validate.Form `json:"a"`
	B validate.Form `json:"b"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	a, msgsA := validate.ToInputs(req.A)
	b, msgsB := validate.ToInputs(req.B)
	if len(msgsA)+len(msgsB) > 0 {
		var details []string
		for _, m := range msgsA {
			details = append(details, "a: "+m)
		}
		for _, m := range msgsB {
			details = append(details, "b: "+m)
		}
		respondError(w, r, http.StatusBadRequest, "invalid input", details...)
		return
	}

	cmp, err := s.eng.Compare(a, b)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cmp)
}

// handleViral runs the curated comparisons. Query parameters location,
// school_tier and living_cost override the configured profile.
func (s *Server) handleViral(w http.ResponseWriter, r *http.Request) {
	profile := s.opts.Profile
	q := r.URL.Query()
	if v := q.Get("location"); v != "" {
		profile.Location = v
	}
	if v := q.Get("school_tier"); v != "" {
		tier, err := model.ParseSchoolTier(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid school_tier")
			return
		}
		profile.SchoolTier = tier
	}
	if v := q.Get("living_cost"); v != "" {
		living, err := model.ParseLivingSituation(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid living_cost")
			return
		}
		profile.Living = living
	}

	results, err := s.eng.RunViral(r.Context(), profile, s.opts.ViralConcurrency)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
