package dto

import "encoding/json"

// ─── Dispatch endpoint ───────────────────────────────────────────────────────

// DispatchRequest is bound from POST /v1/emails-sortants/process. The only
// accepted mode is scan_pending.
type DispatchRequest struct {
	Mode string `json:"mode"`
}

// DispatchJobResult reports the outcome of one claimed job. Exactly one of
// the optional groups is populated depending on Ok.
type DispatchJobResult struct {
	ID        string `json:"id"`
	Ok        bool   `json:"ok"`
	ToEmail   string `json:"toEmail,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	PDFPath   string `json:"pdfPath,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DispatchResponse is the full scan report. Ok is true whenever the scan
// itself ran; individual job failures live in Results.
type DispatchResponse struct {
	Ok        bool                `json:"ok"`
	Mode      string              `json:"mode"`
	Dequeued  int                 `json:"dequeued"`
	Processed int                 `json:"processed"`
	Results   []DispatchJobResult `json:"results"`
}

// ─── Payment finalization ────────────────────────────────────────────────────

// FinaliserPaiementRequest is bound from POST /v1/paiements/finaliser.
type FinaliserPaiementRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}

// EmailFlushResult is the best-effort dispatch flush outcome attached to the
// finalization response. It never changes the primary status code.
type EmailFlushResult struct {
	Ok     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

type FinaliserPaiementResponse struct {
	Ok    bool             `json:"ok"`
	Data  json.RawMessage  `json:"data,omitempty"`
	Error string           `json:"error,omitempty"`
	Email EmailFlushResult `json:"email"`
}
