package billing

// totals_test.go
// Tax math properties:
//   - HT = round(TTC / (1+taux)), TVA = TTC − HT, both non-negative
//   - aggregate TTC reconciled against the authoritative facture total

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func taux(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLigneHTTVA(t *testing.T) {
	// 2 × 500 = 1000 TTC at 5.5% → HT = round(1000/1.055) = 948, TVA = 52
	l := Ligne{Label: "Miel", Quantite: 2, PrixUnitaireTTCCents: 500, TauxTVA: taux("0.055"), TotalTTCCents: 1000}
	assert.Equal(t, int64(948), l.HTCents())
	assert.Equal(t, int64(52), l.TVACents())
}

func TestLigneZeroRate(t *testing.T) {
	l := Ligne{Label: "Pain", Quantite: 1, PrixUnitaireTTCCents: 300, TauxTVA: decimal.Zero, TotalTTCCents: 300}
	assert.Equal(t, int64(300), l.HTCents())
	assert.Equal(t, int64(0), l.TVACents())
}

func TestLigneNonNegative(t *testing.T) {
	cases := []struct {
		ttc  int64
		rate string
	}{
		{0, "0.055"}, {1, "0.2"}, {99, "0.1"}, {12345, "0.021"},
	}
	for _, c := range cases {
		l := Ligne{TotalTTCCents: c.ttc, TauxTVA: taux(c.rate)}
		assert.GreaterOrEqual(t, l.HTCents(), int64(0))
		assert.GreaterOrEqual(t, l.TVACents(), int64(0))
		assert.Equal(t, c.ttc, l.HTCents()+l.TVACents())
	}
}

func TestCalculerTotauxMatch(t *testing.T) {
	// Stored total matches the line sum, no override.
	lignes := []Ligne{
		{Label: "Miel", Quantite: 2, PrixUnitaireTTCCents: 500, TauxTVA: taux("0.055"), TotalTTCCents: 1000},
	}
	tot := CalculerTotaux(lignes, 1000)
	assert.Equal(t, int64(948), tot.HTCents)
	assert.Equal(t, int64(52), tot.TVACents)
	assert.Equal(t, int64(1000), tot.TTCCents)
	assert.False(t, tot.Overridden)
}

func TestCalculerTotauxOverride(t *testing.T) {
	// Stored total disagrees: the authoritative value wins at the aggregate
	// level only; line figures are untouched.
	lignes := []Ligne{
		{Label: "Miel", Quantite: 2, PrixUnitaireTTCCents: 500, TauxTVA: taux("0.055"), TotalTTCCents: 1000},
	}
	tot := CalculerTotaux(lignes, 1500)
	assert.True(t, tot.Overridden)
	assert.Equal(t, int64(1500), tot.TTCCents)
	assert.Equal(t, int64(1000), tot.CalculTTC)
	assert.Equal(t, int64(948), tot.HTCents)
	assert.Equal(t, int64(52), tot.TVACents)
}

func TestCalculerTotauxMultiLine(t *testing.T) {
	lignes := []Ligne{
		{TotalTTCCents: 1000, TauxTVA: taux("0.055")},
		{TotalTTCCents: 2400, TauxTVA: taux("0.2")},
	}
	tot := CalculerTotaux(lignes, 3400)
	assert.Equal(t, int64(3400), tot.TTCCents)
	assert.Equal(t, int64(948+2000), tot.HTCents)
	assert.Equal(t, int64(52+400), tot.TVACents)
	assert.False(t, tot.Overridden)
}
