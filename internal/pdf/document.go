// Package pdf lays out and renders A4 facture documents.
//
// Layout and encoding are split: Layout turns a Document into a flat list
// of draw ops (text and lines with explicit coordinates), and Render plays
// that list onto an fpdf page. The layout algorithm (column offsets, word
// wrap, row-height accumulation, floor clamp) is testable without touching
// the binary PDF encoding.
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"partage/internal/billing"
)

// Partie is one address block (issuer or recipient). Blank fields are
// skipped; NumeroTVA is suppressed when the party is under the franchise
// regime.
type Partie struct {
	Nom             string
	AdresseLignes   []string
	CodePostalVille string
	Siret           string
	NumeroTVA       string
	FranchiseTVA    bool
}

// Contexte carries the optional order/pickup reference codes shown in the
// footer.
type Contexte struct {
	CodeCommande string
	CodeRetrait  string
}

// Document is the deterministic input to Layout. Identical inputs produce
// identical op lists.
type Document struct {
	AppName      string
	Tagline      string
	Numero       string
	Date         time.Time
	Emetteur     Partie
	Destinataire Partie
	Lignes       []billing.Ligne
	Totaux       billing.Totaux
	Contexte     *Contexte
	Devise       string
}

// FormatCents renders minor units as a French money string ("9,48 €").
func FormatCents(cents int64, devise string) string {
	symbol := "€"
	if devise != "" && devise != "EUR" {
		symbol = devise
	}
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d %s", neg, cents/100, cents%100, symbol)
}

// FormatTaux renders a VAT fraction as a percentage ("5,5 %").
func FormatTaux(taux decimal.Decimal) string {
	s := taux.Mul(decimal.NewFromInt(100)).String()
	return strings.ReplaceAll(s, ".", ",") + " %"
}
