package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// fallbackLogo is the embedded 1×1 branding pixel used when no public logo
// URL is configured (LOGO_URL).
const fallbackLogo = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

// BodyItem is one line of the emailed order recap, pre-formatted.
type BodyItem struct {
	Label    string
	Quantite string
	PUTTC    string
	TotalTTC string
}

// BodyData feeds the HTML body template. All money strings are already
// formatted; the template only arranges them.
type BodyData struct {
	// LogoURL is trusted configuration, never user input; template.URL keeps
	// html/template from rejecting the data: fallback.
	LogoURL        template.URL
	Numero         string
	Date           string
	CodeCommande   string
	CodeRetrait    string
	AdresseRetrait string
	TotalTTC       string
	Items          []BodyItem
}

var bodyTmpl = template.Must(template.New("facture").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f5f3ee;font-family:Arial,Helvetica,sans-serif;color:#2d2a26;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px;">
      <table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td style="padding:20px;background:#3e5c3a;" align="center">
          <img src="{{.LogoURL}}" alt="Partage" height="40" style="display:block;">
        </td></tr>
        <tr><td style="padding:24px;">
          <p style="margin:0 0 16px;">Merci pour votre commande. Vous trouverez votre facture en pièce jointe.</p>
          <table role="presentation" width="100%" cellpadding="6" cellspacing="0" style="border-collapse:collapse;font-size:13px;">
            <tr style="background:#f0ede6;">
              <th align="left" style="border-bottom:1px solid #ddd;">Produit</th>
              <th align="right" style="border-bottom:1px solid #ddd;">Qté</th>
              <th align="right" style="border-bottom:1px solid #ddd;">PU TTC</th>
              <th align="right" style="border-bottom:1px solid #ddd;">Total TTC</th>
            </tr>
            {{range .Items}}
            <tr>
              <td style="border-bottom:1px solid #eee;">{{.Label}}</td>
              <td align="right" style="border-bottom:1px solid #eee;">{{.Quantite}}</td>
              <td align="right" style="border-bottom:1px solid #eee;">{{.PUTTC}}</td>
              <td align="right" style="border-bottom:1px solid #eee;">{{.TotalTTC}}</td>
            </tr>
            {{end}}
          </table>
          <table role="presentation" width="100%" cellpadding="4" cellspacing="0" style="margin-top:16px;font-size:13px;background:#f0ede6;border-radius:6px;">
            <tr><td>Commande</td><td align="right"><strong>{{.CodeCommande}}</strong></td></tr>
            <tr><td>Date</td><td align="right">{{.Date}}</td></tr>
            {{if .CodeRetrait}}<tr><td>Code de retrait</td><td align="right"><strong>{{.CodeRetrait}}</strong></td></tr>{{end}}
            {{if .AdresseRetrait}}<tr><td>Point de retrait</td><td align="right">{{.AdresseRetrait}}</td></tr>{{end}}
            <tr><td>Total</td><td align="right"><strong>{{.TotalTTC}}</strong></td></tr>
            <tr><td>Paiement</td><td align="right">Carte bancaire</td></tr>
          </table>
          <p style="margin:20px 0 0;font-size:11px;color:#8a857c;">Facture N° {{.Numero}} · Partage</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

// BuildBody renders the HTML email body. An empty logoURL falls back to the
// embedded image.
func BuildBody(data BodyData, logoURL string) (string, error) {
	if logoURL == "" {
		logoURL = fallbackLogo
	}
	data.LogoURL = template.URL(logoURL)
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("mailer: render body: %w", err)
	}
	return buf.String(), nil
}

// SubjectFor picks the subject by job kind: client-facing invoices get the
// order confirmation wording, everything else a generic document notice.
func SubjectFor(kind, numero string) string {
	if kind == "INVOICE_CLIENT" {
		return "Votre commande Partage — Facture N° " + numero
	}
	return "Partage — Nouveau document N° " + numero
}

// AttachmentName builds the deterministic attachment filename
// `<kind>-<numero>.pdf`.
func AttachmentName(kind, numero string) string {
	return strings.ToLower(kind) + "-" + numero + ".pdf"
}
