package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"ac_efficiency_calc/batch"
	"ac_efficiency_calc/efficiency"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
	maxBatchBytes   = 8 << 20
)

type ctxKey struct{}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type efficiencyResponse struct {
	RequestID string                      `json:"request_id"`
	Result    efficiency.EfficiencyResult `json:"result"`
	Exact     efficiency.EfficiencyResult `json:"exact"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
	Field     string `json:"field,omitempty"`
	Error     string `json:"error"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) efficiencyHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, efficiencyResponse{
		RequestID: requestIDFrom(r.Context()),
		Result:    res.Rounded(),
		Exact:     res,
	})
}

func (s *Server) manualHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compute(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, efficiency.FormatResult(res)+"\n"+efficiency.ManualCalculation(res))
}

func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := batch.Read(http.MaxBytesReader(w, r.Body, maxBatchBytes), s.cfg.BatchMaxRows)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, batch.ErrTooManyRows) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{RequestID: requestIDFrom(r.Context()), Kind: "batch_error", Error: err.Error()})
		return
	}

	results := batch.Evaluate(rows)
	for _, row := range results {
		_, rowErr := row.Result()
		s.metrics.Calculations.WithLabelValues(outcomeOf(rowErr)).Inc()
	}

	var buf bytes.Buffer
	if err := batch.Write(&buf, results); err != nil {
		s.logger.Error("encode batch result", "error", err, "request_id", requestIDFrom(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{RequestID: requestIDFrom(r.Context()), Kind: outcomeInternal, Error: "internal error"})
		return
	}

	sum := batch.Summarize(results)
	s.logger.Info("batch evaluated", "request_id", requestIDFrom(r.Context()), "rows", sum.Rows, "failed", sum.Failed, "mean_cop", sum.MeanCOP)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// compute decodes the body and runs the calculation, writing the error response on failure.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (efficiency.EfficiencyResult, bool) {
	id := requestIDFrom(r.Context())

	raw, err := decodeMeasurement(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{RequestID: id, Kind: "bad_request", Error: err.Error()})
		return efficiency.EfficiencyResult{}, false
	}

	res, err := efficiency.Compute(raw)
	outcome := outcomeOf(err)
	s.metrics.Calculations.WithLabelValues(outcome).Inc()
	if err != nil {
		s.logger.Debug("calculation rejected", "request_id", id, "outcome", outcome, "error", err)
		writeCalcError(w, id, err)
		return efficiency.EfficiencyResult{}, false
	}

	s.logger.Debug("calculation done", "request_id", id, "cop", res.COP, "total_capacity_w", res.TotalCapacityW)
	return res, true
}

// decodeMeasurement accepts each field as either a JSON string or a JSON number.
func decodeMeasurement(body io.Reader) (efficiency.RawMeasurement, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return efficiency.RawMeasurement{}, fmt.Errorf("decode request body: %w", err)
	}

	text := func(name string) (string, error) {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return "", nil
		}
		if len(v) > 0 && v[0] == '"' {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return "", fmt.Errorf("field %s: %w", name, err)
			}
			return s, nil
		}
		return string(v), nil
	}

	var raw efficiency.RawMeasurement
	targets := []struct {
		name string
		dst  *string
	}{
		{efficiency.FieldAirflow, &raw.Airflow},
		{efficiency.FieldAirflowUnit, &raw.AirflowUnit},
		{efficiency.FieldTemperatureIn, &raw.TempIn},
		{efficiency.FieldTemperatureOut, &raw.TempOut},
		{efficiency.FieldRelativeHumidityIn, &raw.RHIn},
		{efficiency.FieldRelativeHumidityOut, &raw.RHOut},
		{efficiency.FieldPowerInput, &raw.Power},
		{efficiency.FieldPowerUnit, &raw.PowerUnit},
	}
	for _, t := range targets {
		v, err := text(t.name)
		if err != nil {
			return efficiency.RawMeasurement{}, err
		}
		*t.dst = v
	}
	return raw, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, efficiency.ErrInput):
		return outcomeInputError
	case errors.Is(err, efficiency.ErrDivisionByZero):
		return outcomeDivisionByZero
	case errors.Is(err, efficiency.ErrDomain):
		return outcomeDomainError
	default:
		return outcomeInternal
	}
}

func writeCalcError(w http.ResponseWriter, id string, err error) {
	resp := errorResponse{RequestID: id, Kind: outcomeOf(err), Error: err.Error()}

	var ie *efficiency.InputError
	var dz *efficiency.DivisionByZeroError
	switch {
	case errors.As(err, &ie):
		resp.Field = ie.Field
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &dz):
		resp.Field = dz.Field
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, efficiency.ErrDomain):
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		resp.Error = "internal error"
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
