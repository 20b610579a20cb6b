package handlers

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
	"github.com/andrey/p2psearch-ledger/internal/services/scheduler"
)

// SchedulerHandler exposes the energy-aware scheduler to an external
// caller holding an up-to-date peer directory snapshot. Clock is the same
// wall-clock-seconds type LedgerHandler uses.
type SchedulerHandler struct {
	scheduler *scheduler.Scheduler
	clock     Clock
	logger    lgr.L
}

func NewSchedulerHandler(s *scheduler.Scheduler, clock Clock, logger lgr.L) *SchedulerHandler {
	return &SchedulerHandler{scheduler: s, clock: clock, logger: logger}
}

type pickRequest struct {
	Nodes        []scheduler.NodeScheduleInfo `json:"nodes"`
	TaskCount    int                          `json:"task_count"`
	HourOverride *float64                     `json:"hour_override,omitempty"`
}

func (h *SchedulerHandler) HandlePick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "malformed request body")
		return
	}

	now := h.clock()

	if req.TaskCount <= 1 {
		decision, ok := h.scheduler.Pick(req.Nodes, req.HourOverride, now)
		if !ok {
			writeError(w, ledger.ErrNotFound, "no LLM-capable candidate available")
			return
		}
		writeJSON(w, http.StatusOK, decision)
		return
	}

	decisions := h.scheduler.PickBatch(req.Nodes, req.TaskCount, req.HourOverride, now)
	writeJSON(w, http.StatusOK, decisions)
}
