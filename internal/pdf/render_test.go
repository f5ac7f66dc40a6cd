package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partage/internal/billing"
)

func TestRenderProducesPDFBytes(t *testing.T) {
	lignes := []billing.Ligne{
		{Label: "Miel de fleurs sauvages en pot de 500 grammes", Quantite: 2, UniteLabel: "pot",
			PrixUnitaireTTCCents: 500, TauxTVA: decimal.RequireFromString("0.055"), TotalTTCCents: 1000},
	}
	doc := sampleDoc(lignes)

	out, err := Render(doc)
	require.NoError(t, err)
	assert.True(t, len(out) > 500)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderEmptyLines(t *testing.T) {
	// A facture with a single synthetic line (non-itemized series) renders fine.
	doc := sampleDoc([]billing.Ligne{
		{Label: "Facture plateforme", Quantite: 1, PrixUnitaireTTCCents: 1500, TauxTVA: decimal.Zero, TotalTTCCents: 1500},
	})
	doc.Contexte = nil
	out, err := Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
