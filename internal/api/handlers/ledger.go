package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/domain/state"
	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
)

// Clock supplies "now" in wall-clock seconds for allowance evaluation.
type Clock func() float64

// LedgerHandler exposes the boundary operations external collaborators
// (the crawler, the query layer, the LLM worker, uptime timers) use to
// record contributions and spend credits.
type LedgerHandler struct {
	ledger  ledger.Service
	keyPair canon.KeyPair
	clock   Clock
	logger  lgr.L
}

// NewLedgerHandler builds a handler over a ledger service. keyPair may be
// nil, in which case recorded entries are unsigned.
func NewLedgerHandler(svc ledger.Service, keyPair canon.KeyPair, clock Clock, logger lgr.L) *LedgerHandler {
	return &LedgerHandler{ledger: svc, keyPair: keyPair, clock: clock, logger: logger}
}

type recordActionRequest struct {
	Action   action.Action `json:"action"`
	Quantity float64       `json:"quantity"`
	OffPeak  bool          `json:"off_peak"`
	Note     string        `json:"note"`
}

func (h *LedgerHandler) HandleRecordAction(w http.ResponseWriter, r *http.Request) {
	var req recordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ledger.ErrInvalidArgument, "malformed request body")
		return
	}

	earned, err := h.ledger.RecordAction(r.Context(), req.Action, req.Quantity, req.OffPeak, req.Note, h.keyPair)
	if err != nil {
		writeError(w, err, "failed to record action")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"earned": earned})
}

type spendRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func (h *LedgerHandler) HandleSpend(w http.ResponseWriter, r *http.Request) {
	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ledger.ErrInvalidArgument, "malformed request body")
		return
	}

	ok, err := h.ledger.Spend(r.Context(), req.Amount, req.Reason)
	if err != nil {
		writeError(w, err, "failed to spend")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": ok})
}

// HandleAllowance computes the caller's current tier, credit state, and
// effective search cost. Search is never refused; this only reports price.
func (h *LedgerHandler) HandleAllowance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	balance, err := h.ledger.Balance(ctx)
	if err != nil {
		writeError(w, err, "failed to read balance")
		return
	}
	score, err := h.ledger.ContributionScore(ctx)
	if err != nil {
		writeError(w, err, "failed to compute contribution score")
		return
	}
	graceStart, err := h.ledger.GraceStart(ctx)
	if err != nil {
		writeError(w, err, "failed to read grace cell")
		return
	}

	tier, baseCost := action.TierForScore(score)
	allowance := state.Evaluate(balance, graceStart, h.clock(), baseCost)

	writeJSON(w, http.StatusOK, map[string]any{
		"balance":               balance,
		"contribution_score":    score,
		"tier":                  tier,
		"state":                 allowance.State,
		"effective_cost":        allowance.EffectiveCost,
		"grace_remaining_hours": allowance.GraceRemainingHours,
		"debt_amount":           allowance.DebtAmount,
	})
}

func (h *LedgerHandler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.ledger.EarningsByAction(r.Context())
	if err != nil {
		writeError(w, err, "failed to compute earnings breakdown")
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
