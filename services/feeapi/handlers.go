package feeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/genlayerlabs/fee-simulator/core/aggregate"
	feeerrors "github.com/genlayerlabs/fee-simulator/core/errors"
	"github.com/genlayerlabs/fee-simulator/core/ledger"
	"github.com/genlayerlabs/fee-simulator/core/pipeline"
	"github.com/genlayerlabs/fee-simulator/core/types"
	"github.com/genlayerlabs/fee-simulator/storage"
	"github.com/genlayerlabs/fee-simulator/stream"
)

func (s *Server) handleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req SubmitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	addresses := make([]types.Address, len(req.Addresses))
	for i, a := range req.Addresses {
		addr, err := types.ParseAddress(a)
		if err != nil {
			http.Error(w, "invalid address: "+err.Error(), http.StatusBadRequest)
			return
		}
		addresses[i] = addr
	}

	rounds := make([]types.Round, len(req.Rounds))
	for i, rd := range req.Rounds {
		rotations := make([]types.Rotation, len(rd.Rotations))
		for j, rot := range rd.Rotations {
			rotation, err := rot.toRotation()
			if err != nil {
				http.Error(w, "invalid rotation: "+err.Error(), http.StatusBadRequest)
				return
			}
			rotations[j] = rotation
		}
		round, err := types.NewRound(rotations)
		if err != nil {
			http.Error(w, "invalid round: "+err.Error(), http.StatusBadRequest)
			return
		}
		rounds[i] = round
	}
	results, err := types.NewTransactionRoundResults(rounds)
	if err != nil {
		http.Error(w, "invalid transcript: "+err.Error(), http.StatusBadRequest)
		return
	}

	budget, err := req.Budget.toBudget()
	if err != nil {
		http.Error(w, "invalid budget: "+err.Error(), http.StatusBadRequest)
		return
	}

	started := time.Now()
	events, labels, err := pipeline.ProcessTransaction(addresses, results, budget)
	s.metrics.RunDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		s.metrics.RunsProcessed.WithLabelValues("error").Inc()
		var convErr *feeerrors.ConservationError
		if errors.As(err, &convErr) {
			s.metrics.ConservationFailures.Inc()
		}
		s.logger.Error("process_transaction failed", "error", err.Error())
		http.Error(w, "computation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RunsProcessed.WithLabelValues("ok").Inc()
	s.metrics.EventsEmitted.Add(float64(len(events)))
	s.metrics.CurrentStakeSlashed.Add(float64(aggregate.AggSlashed(events)))

	runID := uuid.NewString()
	record := storage.RunRecord{
		ID:            runID,
		SenderAddress: budget.SenderAddress.String(),
		LedgerDigest:  ledger.Digest(events),
		EventCount:    len(events),
		RoundCount:    results.Len(),
		CreatedAt:     started.UTC(),
	}
	if s.store != nil {
		if err := s.store.SaveRun(record, events); err != nil {
			s.logger.Error("failed to persist run", "run_id", runID, "error", err.Error())
		}
	}

	if s.broadcaster != nil {
		for _, ev := range events {
			s.broadcaster.Publish(runID, stream.EventMessage{RunID: runID, Event: ev})
		}
		s.broadcaster.Publish(runID, stream.EventMessage{RunID: runID, Done: true})
	}

	dtoEvents := make([]FeeEventDTO, len(events))
	for i, ev := range events {
		dtoEvents[i] = toEventDTO(ev)
	}
	dtoLabels := make([]string, len(labels))
	for i, l := range labels {
		dtoLabels[i] = l.String()
	}

	writeJSON(w, http.StatusCreated, SubmitTransactionResponse{
		RunID:  runID,
		Events: dtoEvents,
		Labels: dtoLabels,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "run_id")
	if s.store == nil {
		http.Error(w, "run storage not configured", http.StatusServiceUnavailable)
		return
	}
	record, err := s.store.GetRun(runID)
	if err != nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	events, err := s.store.GetRunEvents(runID)
	if err != nil {
		http.Error(w, "failed to load run events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Run    storage.RunRecord  `json:"run"`
		Events []storage.RunEvent `json:"events"`
	}{Run: record, Events: events})
}

func (s *Server) handleStreamRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "run_id")
	if s.broadcaster == nil {
		http.Error(w, "streaming not configured", http.StatusServiceUnavailable)
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")
	_ = s.broadcaster.ServeRun(r.Context(), conn, runID)
}

func (s *Server) handleAddressStake(w http.ResponseWriter, r *http.Request) {
	addr, err := types.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		http.Error(w, "invalid address", http.StatusBadRequest)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" || s.store == nil {
		http.Error(w, "run_id query parameter required", http.StatusBadRequest)
		return
	}
	rows, err := s.store.GetRunEvents(runID)
	if err != nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	events := fromRunEvents(rows)
	writeJSON(w, http.StatusOK, struct {
		Address      string `json:"address"`
		CurrentStake uint64 `json:"current_stake"`
	}{Address: addr.String(), CurrentStake: aggregate.CurrentStake(events, addr)})
}

func (s *Server) handleAddressSummary(w http.ResponseWriter, r *http.Request) {
	addr, err := types.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		http.Error(w, "invalid address", http.StatusBadRequest)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" || s.store == nil {
		http.Error(w, "run_id query parameter required", http.StatusBadRequest)
		return
	}
	rows, err := s.store.GetRunEvents(runID)
	if err != nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	events := fromRunEvents(rows)
	writeJSON(w, http.StatusOK, struct {
		Address      string `json:"address"`
		TotalCosts   uint64 `json:"total_costs"`
		TotalEarned  uint64 `json:"total_earnings"`
		TotalBurnt   uint64 `json:"total_burnt"`
		TotalSlashed uint64 `json:"total_slashed"`
		Balance      int64  `json:"balance"`
	}{
		Address:      addr.String(),
		TotalCosts:   aggregate.TotalCosts(events, addr),
		TotalEarned:  aggregate.TotalEarnings(events, addr),
		TotalBurnt:   aggregate.TotalBurnt(events, addr),
		TotalSlashed: aggregate.TotalSlashed(events, addr),
		Balance:      aggregate.TotalBalance(events, addr),
	})
}

// fromRunEvents rebuilds the minimal FeeEvent projection the aggregate
// package needs from persisted rows (address and monetary fields).
func fromRunEvents(rows []storage.RunEvent) []types.FeeEvent {
	events := make([]types.FeeEvent, len(rows))
	for i, row := range rows {
		addr, _ := types.ParseAddress(row.Address)
		events[i] = types.FeeEvent{
			SequenceID: row.SequenceID,
			Address:    addr,
			Cost:       row.Cost,
			Staked:     row.Staked,
			Earned:     row.Earned,
			Slashed:    row.Slashed,
			Burned:     row.Burned,
		}
	}
	return events
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
