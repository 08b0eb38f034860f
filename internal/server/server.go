// Package server exposes the simulation engine over a small JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/internal/optimizer"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/datetime"
	"github.com/iwvelando/mortgage-engine/pkg/output"
	"github.com/iwvelando/mortgage-engine/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	timeout       time.Duration
	version       string
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: cfg.UploadSizeBytes(),
		timeout:       cfg.Timeout(),
		version:       trimmedVersion,
	}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", h.handleSimulate)
	mux.HandleFunc("/api/optimal-extra", h.handleOptimalExtra)
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type simulateResponse struct {
	Scenarios []scenario.Result `json:"scenarios"`
	CSV       string            `json:"csv"`
	Warnings  []string          `json:"warnings,omitempty"`
	Duration  string            `json:"duration"`
}

// loanPayload is engine.Config with a calendar start date.
type loanPayload struct {
	engine.Config
	StartDate string `json:"startDate,omitempty"`
}

type engineRequest struct {
	Config      loanPayload `json:"config"`
	TargetMonth int         `json:"targetMonth,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	configType := "yaml"
	if strings.Contains(r.Header.Get("Content-Type"), "json") {
		configType = "json"
	}
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body), configType)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings, err := cfg.ValidateConfiguration()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var optimization *optimizer.Result
	if optimize, _ := strconv.ParseBool(r.URL.Query().Get("optimize")); optimize {
		runner, err := optimizer.NewRunner(h.logger, cfg)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), op)
			return
		}
		optimization, err = runner.Run(ctx)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("optimizer execution failed: %v", err), op)
			return
		}
	}

	results, err := scenario.Run(ctx, h.logger, cfg, nil)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to simulate: %v", err), op)
		return
	}
	if optimization != nil {
		optimization.Apply(results)
	}

	csvData, err := output.CsvString(results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, simulateResponse{
		Scenarios: results,
		CSV:       csvData,
		Warnings:  warnings,
		Duration:  elapsed.String(),
	})
}

func (h *handler) handleOptimalExtra(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimalExtra"
	req, cfg, ok := h.decodeEngineRequest(w, r, op)
	if !ok {
		return
	}
	if req.TargetMonth < 1 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "targetMonth must be at least 1", op)
		return
	}

	summary := engine.New(h.logger, cfg).OptimalMonthlyExtra(req.TargetMonth)
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	_, cfg, ok := h.decodeEngineRequest(w, r, op)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	comparison, err := engine.Compare(ctx, h.logger, cfg)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, comparison)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeEngineRequest(w http.ResponseWriter, r *http.Request, op string) (engineRequest, engine.Config, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return engineRequest{}, engine.Config{}, false
	}

	body, ok := h.readBody(w, r, op)
	if !ok {
		return engineRequest{}, engine.Config{}, false
	}

	var req engineRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return engineRequest{}, engine.Config{}, false
	}

	cfg, err := req.Config.engineConfig()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return engineRequest{}, engine.Config{}, false
	}
	return req, cfg, true
}

func (p loanPayload) engineConfig() (engine.Config, error) {
	cfg := p.Config
	if p.StartDate != "" {
		t, err := datetime.ParseDate(p.StartDate, nil)
		if err != nil {
			return engine.Config{}, fmt.Errorf("invalid start date %q: %w", p.StartDate, err)
		}
		cfg.StartDate = t
	}
	if cfg.Strategy != "" && !cfg.Strategy.Valid() {
		return engine.Config{}, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	if err := validation.ValidateLoanTerms("config", cfg.Price, cfg.DownPayment, cfg.TermYears); err != nil {
		return engine.Config{}, err
	}
	for i, prepayment := range cfg.Prepayments {
		if prepayment.Frequency == "" {
			return engine.Config{}, fmt.Errorf("prepayment %d: frequency is required", i+1)
		}
		if err := prepayment.Validate(); err != nil {
			return engine.Config{}, fmt.Errorf("prepayment %d: %w", i+1, err)
		}
	}
	for i, event := range cfg.RefinancingEvents {
		if err := event.Validate(); err != nil {
			return engine.Config{}, fmt.Errorf("refinancing %d: %w", i+1, err)
		}
	}
	cfg.RefinancingEvents = engine.AssignIDs("request", cfg.RefinancingEvents)
	return cfg, nil
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "empty request body", op)
		return nil, false
	}
	return body, true
}

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
