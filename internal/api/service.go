// Package api exposes the mortgage simulator over HTTP.
//
// Results are deterministic for a given parameter set and table set, so every
// simulation goes through the result cache first.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fungccc/HKMortgage2026/internal/cache"
	"github.com/fungccc/HKMortgage2026/internal/calculation"
	"github.com/fungccc/HKMortgage2026/internal/config"
	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/fungccc/HKMortgage2026/internal/logging"
	"github.com/fungccc/HKMortgage2026/internal/metrics"
	"github.com/fungccc/HKMortgage2026/internal/output"
)

// maxBodyBytes bounds request bodies; a full parameter set is well under 4 KiB.
const maxBodyBytes = 64 << 10

// Service handles simulation requests.
type Service struct {
	sim       *calculation.MortgageSimulator
	cache     cache.ResultCache
	namespace string
	logger    *zap.Logger
}

// NewService wires a simulator to a result cache. A nil cache disables caching.
func NewService(sim *calculation.MortgageSimulator, c cache.ResultCache, logger *zap.Logger) (*Service, error) {
	ns, err := cache.TablesNamespace(sim.Tables)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sim: sim, cache: c, namespace: ns, logger: logger}, nil
}

// SimulateResponse is the JSON body returned from POST /simulate.
type SimulateResponse struct {
	RunID  string                   `json:"run_id"`
	Cached bool                     `json:"cached"`
	Result *domain.SimulationResult `json:"result"`
}

// MarketCycleEntry is one row of GET /market-cycle.
type MarketCycleEntry struct {
	YearIndex    int `json:"year_index"`
	CalendarYear int `json:"calendar_year"`
	domain.MarketCondition
}

// MarketCycleResponse is the JSON body of GET /market-cycle.
type MarketCycleResponse struct {
	Cycle     []MarketCycleEntry        `json:"market_cycle"`
	StampDuty *domain.StampDutySchedule `json:"stamp_duty"`
	Fees      *domain.FeeSchedule       `json:"fees"`
}

// Routes mounts the API handlers on r.
func (s *Service) Routes(r chi.Router) {
	r.Get("/defaults", s.GetDefaults)
	r.Get("/market-cycle", s.GetMarketCycle)
	r.Post("/simulate", s.Simulate)
	r.Post("/simulate/export/{format}", s.Export)
}

// GetDefaults handles GET /defaults.
func (s *Service) GetDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.DefaultParameters())
}

// GetMarketCycle handles GET /market-cycle.
func (s *Service) GetMarketCycle(w http.ResponseWriter, r *http.Request) {
	resp := MarketCycleResponse{
		StampDuty: s.sim.Tables.StampDuty,
		Fees:      s.sim.Tables.Fees,
	}
	for i, c := range s.sim.Tables.MarketCycle {
		resp.Cycle = append(resp.Cycle, MarketCycleEntry{
			YearIndex:       i,
			CalendarYear:    calculation.DefaultStartYear + i,
			MarketCondition: c,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Simulate handles POST /simulate.
func (s *Service) Simulate(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}
	result, cached, err := s.run(r.Context(), params)
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:  uuid.New().String(),
		Cached: cached,
		Result: result,
	})
}

// Export handles POST /simulate/export/{format} and returns the rendered
// report as a download.
func (s *Service) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	f := output.GetFormatterByName(format)
	if f == nil {
		writeError(w, output.UnsupportedFormatError(format).Error(), http.StatusNotFound)
		return
	}
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}
	result, _, err := s.run(r.Context(), params)
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	data, err := f.Format(result)
	if err != nil {
		s.logger.Error("render failed", logging.Op("export"), zap.String("format", f.Name()), zap.Error(err))
		writeError(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	metrics.ExportsTotal.WithLabelValues(f.Name()).Inc()

	w.Header().Set("Content-Type", output.ContentType(f.Name()))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="mortgage_report.%s"`, output.Extension(f.Name())))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// run answers from the cache when possible and simulates otherwise.
func (s *Service) run(ctx context.Context, params domain.SimulationParameters) (*domain.SimulationResult, bool, error) {
	key, err := cache.Key(s.namespace, params)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		res, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("cache get failed", logging.Op("simulate"), zap.String("backend", s.cache.Name()), zap.Error(err))
		}
		metrics.ObserveCache(s.cache.Name(), hit)
		if hit {
			return res, true, nil
		}
	}

	start := time.Now()
	res, err := s.sim.Simulate(params)
	switch {
	case errors.Is(err, domain.ErrInvalidParameters):
		metrics.ObserveSimulation(metrics.OutcomeInvalid, time.Since(start))
		return nil, false, err
	case err != nil:
		metrics.ObserveSimulation(metrics.OutcomeError, time.Since(start))
		return nil, false, err
	}
	metrics.ObserveSimulation(metrics.OutcomeOK, time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			s.logger.Warn("cache set failed", logging.Op("simulate"), zap.String("backend", s.cache.Name()), zap.Error(err))
		}
	}
	return res, false, nil
}

func (s *Service) writeRunError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidParameters) {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("simulation failed", logging.Op("simulate"), zap.Error(err))
	writeError(w, "simulation failed", http.StatusInternalServerError)
}

// decodeParams overlays the request body on the default parameters, so a
// client only sends the fields it wants to change.
func decodeParams(w http.ResponseWriter, r *http.Request) (domain.SimulationParameters, bool) {
	params := config.DefaultParameters()
	if r.Body == nil || r.ContentLength == 0 {
		return params, true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		writeError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return params, false
	}
	return params, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
