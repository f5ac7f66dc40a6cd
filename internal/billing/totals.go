// Package billing computes per-line and aggregate tax amounts for a facture.
// All money is tax-inclusive minor units (cents); the tax-exclusive side is
// derived, never stored.
package billing

import "github.com/shopspring/decimal"

// Ligne is one priced line item, assembled per dispatch from the order rows
// (or synthesized when a document series carries no itemization).
type Ligne struct {
	Label                string
	Quantite             int64
	UniteLabel           string
	PrixUnitaireTTCCents int64
	TauxTVA              decimal.Decimal // fraction, e.g. 0.055
	TotalTTCCents        int64
}

// HTCents is the tax-exclusive amount: round(TTC / (1 + taux)).
func (l Ligne) HTCents() int64 {
	un := decimal.NewFromInt(1)
	return decimal.NewFromInt(l.TotalTTCCents).Div(un.Add(l.TauxTVA)).Round(0).IntPart()
}

// TVACents is the tax amount: TTC − HT.
func (l Ligne) TVACents() int64 {
	return l.TotalTTCCents - l.HTCents()
}

// Totaux aggregates a facture's lines. When the accumulated TTC disagrees
// with the facture's authoritative total, TTCCents holds the authoritative
// value and Overridden is set. Per-line figures are left as computed, so a
// rendered document may show line totals that do not sum to the grand total.
// The caller decides whether to log; this function has no side effects.
type Totaux struct {
	HTCents    int64
	TVACents   int64
	TTCCents   int64
	CalculTTC  int64 // the accumulated sum, kept for the override warning
	Overridden bool
}

// CalculerTotaux accumulates HT/TVA/TTC across lignes and reconciles the
// TTC sum against the facture's stored total. Quantities are assumed
// positive; they are not revalidated here.
func CalculerTotaux(lignes []Ligne, totalFactureTTCCents int64) Totaux {
	var t Totaux
	for _, l := range lignes {
		t.HTCents += l.HTCents()
		t.TVACents += l.TVACents()
		t.TTCCents += l.TotalTTCCents
	}
	t.CalculTTC = t.TTCCents
	if t.TTCCents != totalFactureTTCCents {
		t.TTCCents = totalFactureTTCCents
		t.Overridden = true
	}
	return t
}
