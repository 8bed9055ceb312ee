package main

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/ingest"
	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/store"
)

// maxUploadBytes caps lead CSV uploads at 10 MB.
const maxUploadBytes = 10 << 20

// apiServer holds the HTTP handler dependencies.
type apiServer struct {
	store store.Store
	env   *scoringEnv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSetOffer stores the working offer for subsequent scoring runs.
func (s *apiServer) handleSetOffer(w http.ResponseWriter, r *http.Request) {
	var offer model.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := offer.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.SetOffer(r.Context(), offer); err != nil {
		zap.L().Error("set offer failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store offer")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"status": "stored",
		"offer":  offer.Name,
	})
}

// handleUploadLeads accepts a multipart CSV upload and replaces the stored
// lead set.
func (s *apiServer) handleUploadLeads(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	leads, err := ingest.ParseLeadsCSV(file)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.SetLeads(r.Context(), leads); err != nil {
		zap.L().Error("store leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store leads")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "uploaded",
		"leads":  len(leads),
	})
}

// handleScore runs the scoring engine over the stored offer and leads.
func (s *apiServer) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offer, err := s.store.GetOffer(ctx)
	if err != nil {
		zap.L().Error("get offer failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load offer")
		return
	}
	if offer == nil {
		writeError(w, http.StatusBadRequest, "no offer set: POST /offer first")
		return
	}

	leads, err := s.store.GetLeads(ctx)
	if err != nil {
		zap.L().Error("get leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load leads")
		return
	}
	if len(leads) == 0 {
		writeError(w, http.StatusBadRequest, "no leads uploaded: POST /leads/upload first")
		return
	}

	results := s.env.Engine.ScoreLeads(ctx, leads, *offer)

	run, err := s.store.SaveRun(ctx, offer.Name, results)
	if err != nil {
		zap.L().Error("save run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save results")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":  run.ID,
		"scored":  len(results),
		"results": results,
	})
}

// handleResults returns the most recent scoring run.
func (s *apiServer) handleResults(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun(r.Context())
	if err != nil {
		zap.L().Error("latest run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "no scoring run yet: POST /score first")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// handleExportResults streams the most recent run as CSV.
func (s *apiServer) handleExportResults(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun(r.Context())
	if err != nil {
		zap.L().Error("latest run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "no scoring run yet: POST /score first")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"name", "role", "company", "intent", "score", "reasoning"})
	for _, res := range run.Results {
		_ = cw.Write([]string{
			res.Name, res.Role, res.Company,
			string(res.Intent), strconv.Itoa(res.Score), res.Reasoning,
		})
	}
	cw.Flush()
}

// handleUsage returns the process-wide AI usage snapshot.
func (s *apiServer) handleUsage(w http.ResponseWriter, r *http.Request) {
	snapshot := s.env.Tracker.Snapshot()

	remaining := make(map[string]int)
	for _, name := range []string{"gemini", "openai", "anthropic"} {
		if n := s.env.Limiter.Remaining(name); n >= 0 {
			remaining[name] = n
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"usage":              snapshot,
		"rate_remaining_60s": remaining,
	})
}

// handleUsageReset clears the usage counters.
func (s *apiServer) handleUsageReset(w http.ResponseWriter, r *http.Request) {
	s.env.Tracker.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
