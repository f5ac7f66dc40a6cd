package worker

// dispatch.go
// Processes pending emails_sortants jobs claimed from Postgres.
// Per job: load the facture, resolve the recipient, assemble line items,
// compute totals, render the PDF, publish it to object storage, then email
// it through the provider. One job's failure never aborts the batch.

import (
	"context"
	"fmt"
	"strings"

	"partage/internal/billing"
	"partage/internal/config"
	"partage/internal/dto"
	"partage/internal/infra"
	"partage/internal/mailer"
	"partage/internal/model"
	"partage/internal/pdf"
	"partage/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Dispatcher drains the emails_sortants queue. Stateless across calls;
// concurrent invocations are safe because the claim is atomic in Postgres.
type Dispatcher struct {
	cfg       config.Config
	jobs      repository.EmailSortantRepository
	factures  repository.FactureRepository
	profils   repository.ProfilRepository
	commandes repository.CommandeRepository
	store     infra.ObjectStore
	provider  mailer.Provider
	breaker   *infra.CircuitBreaker
}

// NewDispatcher wires all dependencies for the dispatch worker.
func NewDispatcher(
	cfg config.Config,
	jobs repository.EmailSortantRepository,
	factures repository.FactureRepository,
	profils repository.ProfilRepository,
	commandes repository.CommandeRepository,
	store infra.ObjectStore,
	provider mailer.Provider,
	breaker *infra.CircuitBreaker,
) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		jobs:      jobs,
		factures:  factures,
		profils:   profils,
		commandes: commandes,
		store:     store,
		provider:  provider,
		breaker:   breaker,
	}
}

// ProcessPending claims up to the configured batch size of pending jobs and
// processes them serially. The returned error covers the scan itself only;
// per-job failures are reported inside the response.
func (d *Dispatcher) ProcessPending(ctx context.Context) (*dto.DispatchResponse, error) {
	claimed, err := d.jobs.ClaimPending(ctx, d.cfg.DispatchBatchSize, d.cfg.LockTTL())
	if err != nil {
		return nil, fmt.Errorf("claim pending jobs: %w", err)
	}

	resp := &dto.DispatchResponse{
		Ok:       true,
		Mode:     "scan_pending",
		Dequeued: len(claimed),
		Results:  make([]dto.DispatchJobResult, 0, len(claimed)),
	}

	for i := range claimed {
		job := &claimed[i]
		resp.Results = append(resp.Results, d.processJob(ctx, job))
		resp.Processed++
	}
	return resp, nil
}

// jobOutcome carries the diagnostic fields of a successful job.
type jobOutcome struct {
	toEmail   string
	messageID string
	pdfPath   string
}

func (d *Dispatcher) processJob(ctx context.Context, job *model.EmailSortant) dto.DispatchJobResult {
	out, err := d.runJob(ctx, job)
	if err != nil {
		log.Error().Err(err).
			Str("job_id", job.ID.String()).
			Str("type_email", job.TypeEmail).
			Msg("dispatch: job failed")
		if mErr := d.jobs.MarkFailed(ctx, job.ID, err.Error()); mErr != nil {
			log.Error().Err(mErr).Str("job_id", job.ID.String()).Msg("dispatch: mark failed")
		}
		return dto.DispatchJobResult{ID: job.ID.String(), Ok: false, Error: err.Error()}
	}

	if mErr := d.jobs.MarkSent(ctx, job.ID, out.messageID); mErr != nil {
		log.Error().Err(mErr).Str("job_id", job.ID.String()).Msg("dispatch: mark sent")
	}
	log.Info().
		Str("job_id", job.ID.String()).
		Str("to", out.toEmail).
		Str("pdf_path", out.pdfPath).
		Msg("dispatch: job sent")
	return dto.DispatchJobResult{
		ID:        job.ID.String(),
		Ok:        true,
		ToEmail:   out.toEmail,
		MessageID: out.messageID,
		PDFPath:   out.pdfPath,
	}
}

// runJob executes the full pipeline for one claimed job. Any returned error
// marks the job failed with the message stored verbatim.
func (d *Dispatcher) runJob(ctx context.Context, job *model.EmailSortant) (*jobOutcome, error) {
	// 1. Normalize and validate the kind
	kind := strings.ToUpper(strings.TrimSpace(job.TypeEmail))
	switch kind {
	case model.KindInvoiceClient, model.KindInvoicePlatform, model.KindSettlementStatement:
	default:
		return nil, fmt.Errorf("unknown email kind: %s", job.TypeEmail)
	}

	// 2. Facture (mandatory)
	facture, err := d.factures.FindByID(ctx, job.FactureID)
	if err != nil {
		return nil, fmt.Errorf("facture %s: %w", job.FactureID, err)
	}

	// 3. Recipient identity (mandatory)
	recipientID := facture.ProducteurProfilID
	if kind == model.KindInvoiceClient {
		recipientID = facture.ClientProfilID
	}
	if recipientID == uuid.Nil {
		return nil, fmt.Errorf("facture %s has no recipient profil for kind %s", facture.Numero, kind)
	}

	// 4. Recipient email (mandatory)
	toEmail, err := d.profils.FindEmailByProfilID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("resolve email for profil %s: %w", recipientID, err)
	}

	// 5. Best-effort context lookups; blanks degrade the rendering, never
	// fail the job.
	producteur := d.lookupProfil(ctx, facture.ProducteurProfilID)
	recipient := d.lookupProfil(ctx, recipientID)

	var commande *model.Commande
	var participant *model.Participant
	if facture.CommandeID != nil {
		if c, err := d.commandes.FindByID(ctx, *facture.CommandeID); err == nil {
			commande = c
			if p, err := d.commandes.FindParticipant(ctx, c.ID, facture.ClientProfilID); err == nil {
				participant = p
			}
		}
	}

	// 6. Line items, synthetic fallback when nothing is itemized
	lignes := d.buildLignes(ctx, kind, facture, participant)

	// 7. Totals, reconciled against the facture's authoritative amount
	totaux := billing.CalculerTotaux(lignes, facture.MontantTTCCents)
	if totaux.Overridden {
		log.Warn().
			Str("facture", facture.Numero).
			Int64("computed_ttc_cents", totaux.CalculTTC).
			Int64("stored_ttc_cents", facture.MontantTTCCents).
			Msg("dispatch: line sum disagrees with stored total, stored total wins")
	}

	// 8. PDF
	doc := pdf.Document{
		AppName:      "Partage",
		Tagline:      "Le goût du local, ensemble",
		Numero:       facture.Numero,
		Date:         facture.EmiseLe,
		Emetteur:     partieFromProfil(producteur),
		Destinataire: partieFromProfil(recipient),
		Lignes:       lignes,
		Totaux:       totaux,
		Devise:       facture.Devise,
	}
	if commande != nil {
		doc.Contexte = &pdf.Contexte{CodeCommande: commande.Code}
		if participant != nil {
			doc.Contexte.CodeRetrait = participant.CodeRetrait
		}
	}
	pdfBytes, err := pdf.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("render pdf for facture %s: %w", facture.Numero, err)
	}

	// 9. Publish to object storage, then record the key on the facture
	key := infra.DocumentKey(facture.TypeDocument, facture.ProducteurProfilID.String(), facture.Numero)
	if err := d.store.Upload(ctx, key, pdfBytes, "application/pdf"); err != nil {
		return nil, fmt.Errorf("upload pdf for facture %s: %w", facture.Numero, err)
	}
	if err := d.factures.UpdatePDFPath(ctx, facture.ID, key); err != nil {
		return nil, fmt.Errorf("record pdf path for facture %s: %w", facture.Numero, err)
	}

	// 10. Email, behind the provider circuit breaker
	body, err := mailer.BuildBody(d.bodyData(facture, commande, participant, lignes, totaux), d.cfg.LogoURL)
	if err != nil {
		return nil, err
	}
	msg := mailer.Message{
		ToEmail:        toEmail,
		Subject:        mailer.SubjectFor(kind, facture.Numero),
		HTML:           body,
		AttachmentName: mailer.AttachmentName(kind, facture.Numero),
		Attachment:     pdfBytes,
	}
	var sendResult *mailer.Result
	err = d.breaker.Execute(func() error {
		r, sendErr := d.provider.Send(ctx, msg)
		if sendErr != nil {
			return sendErr
		}
		sendResult = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("send email for facture %s: %w", facture.Numero, err)
	}

	out := &jobOutcome{toEmail: toEmail, pdfPath: key}
	if sendResult != nil {
		out.messageID = sendResult.MessageID
	}
	return out, nil
}

// lookupProfil is best-effort; a missing or unreadable profil renders as a
// blank address block.
func (d *Dispatcher) lookupProfil(ctx context.Context, id uuid.UUID) *model.Profil {
	if id == uuid.Nil {
		return nil
	}
	p, err := d.profils.FindByID(ctx, id)
	if err != nil {
		log.Debug().Err(err).Str("profil_id", id.String()).Msg("dispatch: profil lookup degraded")
		return nil
	}
	return p
}

// buildLignes pulls the participant's itemized rows for client invoices and
// falls back to a single synthetic line covering the full facture amount.
func (d *Dispatcher) buildLignes(ctx context.Context, kind string, facture *model.Facture, participant *model.Participant) []billing.Ligne {
	if kind == model.KindInvoiceClient && participant != nil {
		rows, err := d.factures.FindLignesForParticipant(ctx, participant.ID)
		if err != nil {
			log.Debug().Err(err).Str("facture", facture.Numero).Msg("dispatch: line item lookup degraded")
		}
		if len(rows) > 0 {
			lignes := make([]billing.Ligne, 0, len(rows))
			for _, r := range rows {
				lignes = append(lignes, billing.Ligne{
					Label:                r.Nom,
					Quantite:             r.Quantite,
					UniteLabel:           r.Unite,
					PrixUnitaireTTCCents: r.PrixUnitaireTTCCents,
					TauxTVA:              r.TauxTVA,
					TotalTTCCents:        r.TotalTTCCents,
				})
			}
			return lignes
		}
	}

	label := "Commande de produits"
	if facture.TypeDocument == model.SerieFacturePlateforme {
		label = "Frais de service Partage"
	}
	return []billing.Ligne{{
		Label:                label,
		Quantite:             1,
		PrixUnitaireTTCCents: facture.MontantTTCCents,
		TotalTTCCents:        facture.MontantTTCCents,
	}}
}

func (d *Dispatcher) bodyData(facture *model.Facture, commande *model.Commande, participant *model.Participant, lignes []billing.Ligne, totaux billing.Totaux) mailer.BodyData {
	data := mailer.BodyData{
		Numero:   facture.Numero,
		Date:     facture.EmiseLe.Format("02/01/2006"),
		TotalTTC: pdf.FormatCents(totaux.TTCCents, facture.Devise),
	}
	if commande != nil {
		data.CodeCommande = commande.Code
		data.AdresseRetrait = formatAdresseRetrait(commande)
	}
	if participant != nil {
		data.CodeRetrait = participant.CodeRetrait
	}
	for _, l := range lignes {
		qte := fmt.Sprintf("%d", l.Quantite)
		if l.UniteLabel != "" {
			qte += " " + l.UniteLabel
		}
		data.Items = append(data.Items, mailer.BodyItem{
			Label:    l.Label,
			Quantite: qte,
			PUTTC:    pdf.FormatCents(l.PrixUnitaireTTCCents, facture.Devise),
			TotalTTC: pdf.FormatCents(l.TotalTTCCents, facture.Devise),
		})
	}
	return data
}

func formatAdresseRetrait(c *model.Commande) string {
	parts := make([]string, 0, 2)
	if c.RetraitAdresse != "" {
		parts = append(parts, c.RetraitAdresse)
	}
	if cp := strings.TrimSpace(c.RetraitCodePostal + " " + c.RetraitVille); cp != "" {
		parts = append(parts, cp)
	}
	return strings.Join(parts, ", ")
}

// partieFromProfil maps a profil row onto a document address block. A nil
// profil yields an all-blank block.
func partieFromProfil(p *model.Profil) pdf.Partie {
	if p == nil {
		return pdf.Partie{}
	}
	partie := pdf.Partie{
		Nom:          p.NomAffichage,
		FranchiseTVA: p.RegimeTVA == model.RegimeTVAFranchise,
	}
	if p.AdresseLigne1 != "" {
		partie.AdresseLignes = append(partie.AdresseLignes, p.AdresseLigne1)
	}
	if p.AdresseLigne2 != "" {
		partie.AdresseLignes = append(partie.AdresseLignes, p.AdresseLigne2)
	}
	partie.CodePostalVille = strings.TrimSpace(p.CodePostal + " " + p.Ville)
	if p.Siret != nil {
		partie.Siret = *p.Siret
	}
	if p.NumeroTVA != nil {
		partie.NumeroTVA = *p.NumeroTVA
	}
	return partie
}
