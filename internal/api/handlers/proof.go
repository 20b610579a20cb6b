package handlers

import (
	"net/http"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/andrey/p2psearch-ledger/internal/services/proof"
)

// ProofHandler lets a requesting peer ask this node for a signed,
// Merkle-anchored credit proof, and lets any caller verify one it already
// holds (the verifier is pure and needs no server-side state).
type ProofHandler struct {
	builder    proof.Builder
	peerID     string
	sampleSize int
	logger     lgr.L
}

// NewProofHandler builds a proof handler. peerID identifies this node in
// emitted proofs; sampleSize <= 0 defers to proof.DefaultSampleSize.
func NewProofHandler(builder proof.Builder, peerID string, sampleSize int, logger lgr.L) *ProofHandler {
	return &ProofHandler{builder: builder, peerID: peerID, sampleSize: sampleSize, logger: logger}
}

func (h *ProofHandler) HandleGetProof(w http.ResponseWriter, r *http.Request) {
	requestID := r.URL.Query().Get("request_id")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	p, err := h.builder.Build(r.Context(), h.peerID, requestID, h.sampleSize)
	if err != nil {
		writeError(w, err, "failed to build credit proof")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProofHandler) HandleVerifyProof(w http.ResponseWriter, r *http.Request) {
	var p proof.CreditProof
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, err, "malformed credit proof")
		return
	}
	result := proof.Verify(p)
	writeJSON(w, http.StatusOK, result)
}
