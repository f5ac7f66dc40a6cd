package pdf

// layout_test.go
// The layout is exercised against a fake width function (2mm per rune) so
// wrap and clamp behavior is checked without decoding any PDF bytes.

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partage/internal/billing"
)

func fakeWidth(text, _ string, _ float64) float64 {
	return float64(len([]rune(text))) * 2
}

func sampleDoc(lignes []billing.Ligne) Document {
	return Document{
		AppName: "Partage",
		Numero:  "FC-2026-0042",
		Date:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Emetteur: Partie{
			Nom:             "Ferme des Lilas",
			AdresseLignes:   []string{"12 chemin des Prés"},
			CodePostalVille: "26000 Valence",
			Siret:           "123 456 789 00012",
			NumeroTVA:       "FR01234567890",
		},
		Destinataire: Partie{Nom: "Camille Dupont", CodePostalVille: "26100 Romans"},
		Lignes:       lignes,
		Totaux:       billing.CalculerTotaux(lignes, sumTTC(lignes)),
		Contexte:     &Contexte{CodeCommande: "CMD-881", CodeRetrait: "R4T7"},
		Devise:       "EUR",
	}
}

func sumTTC(lignes []billing.Ligne) int64 {
	var s int64
	for _, l := range lignes {
		s += l.TotalTTCCents
	}
	return s
}

func textOps(ops []Op) []Op {
	var out []Op
	for _, op := range ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

func findText(t *testing.T, ops []Op, substr string) Op {
	t.Helper()
	for _, op := range textOps(ops) {
		if strings.Contains(op.Text, substr) {
			return op
		}
	}
	t.Fatalf("no text op containing %q", substr)
	return Op{}
}

func TestWrapWordsGreedy(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) * 2 }
	// budget 20mm = 10 chars per line
	lines := wrapWords("miel de fleurs sauvages", 20, width)
	assert.Equal(t, []string{"miel de", "fleurs", "sauvages"}, lines)

	assert.Equal(t, []string{""}, wrapWords("", 20, width))
	// a single oversized word still gets its own line
	assert.Equal(t, []string{"interminablement"}, wrapWords("interminablement", 10, width))
}

func TestLayoutDeterministic(t *testing.T) {
	doc := sampleDoc([]billing.Ligne{
		{Label: "Miel", Quantite: 2, PrixUnitaireTTCCents: 500, TauxTVA: decimal.RequireFromString("0.055"), TotalTTCCents: 1000},
	})
	a := Layout(doc, fakeWidth)
	b := Layout(doc, fakeWidth)
	assert.Equal(t, a, b)
}

func TestLayoutColumnsAndTotals(t *testing.T) {
	lignes := []billing.Ligne{
		{Label: "Miel", Quantite: 2, UniteLabel: "pot", PrixUnitaireTTCCents: 500, TauxTVA: decimal.RequireFromString("0.055"), TotalTTCCents: 1000},
	}
	ops := Layout(sampleDoc(lignes), fakeWidth)

	// Header and row cells sit at the derived column offsets.
	header := findText(t, ops, "Désignation")
	assert.Equal(t, Margin, header.X)
	total := findText(t, ops, "Total TTC")
	require.NotZero(t, total.Size)

	row := findText(t, ops, "Miel")
	assert.Equal(t, colLabel.x, row.X)
	qte := findText(t, ops, "2 pot")
	assert.Equal(t, colQte.x, qte.X)
	assert.Equal(t, "R", qte.Align)
	tva := findText(t, ops, "5,5 %")
	assert.Equal(t, colTVA.x, tva.X)

	// Totals block: HT 948, TVA 52, TTC 1000 with TTC bold.
	findText(t, ops, "9,48 €")
	findText(t, ops, "0,52 €")
	var boldTTC bool
	for _, op := range textOps(ops) {
		if op.Text == "10,00 €" && op.Style == "B" {
			boldTTC = true
		}
	}
	assert.True(t, boldTTC, "grand total should be bold")

	// Trailing muted reference line.
	ref := findText(t, ops, "Code retrait R4T7")
	assert.Equal(t, 128, ref.Gray)
}

func TestLayoutFloorClampClipsLongLists(t *testing.T) {
	var lignes []billing.Ligne
	for i := 0; i < 200; i++ {
		lignes = append(lignes, billing.Ligne{
			Label: "Panier de légumes de saison du producteur", Quantite: 1,
			PrixUnitaireTTCCents: 100, TauxTVA: decimal.RequireFromString("0.055"), TotalTTCCents: 100,
		})
	}
	ops := Layout(sampleDoc(lignes), fakeWidth)

	// No op may land past the floor except the totals/footer drawn after it.
	rows := 0
	for _, op := range textOps(ops) {
		if strings.HasPrefix(op.Text, "Panier") {
			rows++
			assert.LessOrEqual(t, op.Y, FloorY)
		}
	}
	assert.Greater(t, rows, 0)
	assert.Less(t, rows, 200, "long lists must be clipped, not paginated")
}

func TestPartieLinesTVASuppression(t *testing.T) {
	p := Partie{Nom: "Ferme", NumeroTVA: "FR123", FranchiseTVA: true}
	assert.NotContains(t, partieLines(p), "TVA : FR123")

	p.FranchiseTVA = false
	assert.Contains(t, partieLines(p), "TVA : FR123")
}
