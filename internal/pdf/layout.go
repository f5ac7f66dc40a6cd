package pdf

import (
	"fmt"
	"strings"
)

// Page geometry, millimeters, A4 portrait.
const (
	PageW = 210.0
	PageH = 297.0
	// Margin is the single margin constant every column offset derives from.
	Margin = 15.0
	// LineH is the fixed text line height.
	LineH = 5.0
	// FloorY is the lowest y the item cursor may reach; rows past it are
	// clipped rather than spilling to a second page.
	FloorY = 250.0

	fontFamily = "Helvetica"
)

// OpKind discriminates draw ops.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
)

// Op is one declarative draw command. For OpText, X/Y is the top-left of a
// cell W wide and H tall; Align is "L", "R" or "C". For OpLine, the segment
// runs (X,Y)–(X2,Y2).
type Op struct {
	Kind  OpKind
	Text  string
	X, Y  float64
	W, H  float64
	Style string // "", "B", "I"
	Size  float64
	Align string
	Gray  int // 0 = black
	X2    float64
	Y2    float64
}

// WidthFn measures rendered text width in mm for a given style and size.
// Render supplies fpdf's font metrics; tests supply a fake.
type WidthFn func(text string, style string, size float64) float64

// Column x-offsets and widths, all derived from PageW and Margin.
var (
	contentW = PageW - 2*Margin
	colLabel = column{x: Margin, w: 0.40 * contentW, align: "L"}
	colQte   = column{x: Margin + 0.40*contentW, w: 0.10 * contentW, align: "R"}
	colPU    = column{x: Margin + 0.50*contentW, w: 0.18 * contentW, align: "R"}
	colTVA   = column{x: Margin + 0.68*contentW, w: 0.12 * contentW, align: "R"}
	colTotal = column{x: Margin + 0.80*contentW, w: 0.20 * contentW, align: "R"}
)

type column struct {
	x, w  float64
	align string
}

func text(t string, x, y, w float64, style string, size float64, align string) Op {
	return Op{Kind: OpText, Text: t, X: x, Y: y, W: w, H: LineH, Style: style, Size: size, Align: align}
}

func rule(y float64) Op {
	return Op{Kind: OpLine, X: Margin, Y: y, X2: PageW - Margin, Y2: y}
}

// wrapWords greedily packs words into lines no wider than budget. A single
// word wider than the budget gets a line of its own (fpdf clips it).
func wrapWords(s string, budget float64, width func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if width(cur+" "+w) <= budget {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// Layout computes the full op list for a facture document: header and
// branding, number/date block, the two address blocks, the item table with
// wrapped labels and the floor clamp, the totals block, and the trailing
// pickup reference line.
func Layout(doc Document, width WidthFn) []Op {
	var ops []Op
	y := Margin

	// Branding + right-aligned facture number and date.
	ops = append(ops, text(doc.AppName, Margin, y, contentW/2, "B", 16, "L"))
	ops = append(ops, text("Facture N° "+doc.Numero, PageW/2, y, contentW/2, "B", 10, "R"))
	y += 6
	if doc.Tagline != "" {
		ops = append(ops, text(doc.Tagline, Margin, y, contentW/2, "", 8, "L"))
	}
	ops = append(ops, text(doc.Date.Format("02/01/2006"), PageW/2, y, contentW/2, "", 9, "R"))
	y += 12

	// Address blocks, side by side.
	leftLines := partieLines(doc.Emetteur)
	rightLines := partieLines(doc.Destinataire)
	blockW := contentW/2 - 5
	for i, l := range leftLines {
		style := ""
		if i == 0 {
			style = "B"
		}
		ops = append(ops, text(l, Margin, y+float64(i)*LineH, blockW, style, 9, "L"))
	}
	for i, l := range rightLines {
		style := ""
		if i == 0 {
			style = "B"
		}
		ops = append(ops, text(l, PageW/2+5, y+float64(i)*LineH, blockW, style, 9, "L"))
	}
	n := len(leftLines)
	if len(rightLines) > n {
		n = len(rightLines)
	}
	y += float64(n)*LineH + 6

	ops = append(ops, rule(y))
	y += 3

	// Table header.
	ops = append(ops, text("Désignation", colLabel.x, y, colLabel.w, "B", 8, colLabel.align))
	ops = append(ops, text("Qté", colQte.x, y, colQte.w, "B", 8, colQte.align))
	ops = append(ops, text("PU TTC", colPU.x, y, colPU.w, "B", 8, colPU.align))
	ops = append(ops, text("TVA", colTVA.x, y, colTVA.w, "B", 8, colTVA.align))
	ops = append(ops, text("Total TTC", colTotal.x, y, colTotal.w, "B", 8, colTotal.align))
	y += LineH
	ops = append(ops, rule(y))
	y += 2

	// Item rows. Row height follows the wrapped label; rows that would push
	// the cursor past the floor are clipped.
	labelWidth := func(s string) float64 { return width(s, "", 8) }
	for _, l := range doc.Lignes {
		wrapped := wrapWords(l.Label, colLabel.w, labelWidth)
		rowH := float64(len(wrapped)) * LineH
		if y+rowH > FloorY {
			break
		}
		for i, line := range wrapped {
			ops = append(ops, text(line, colLabel.x, y+float64(i)*LineH, colLabel.w, "", 8, colLabel.align))
		}
		qte := fmt.Sprintf("%d", l.Quantite)
		if l.UniteLabel != "" {
			qte += " " + l.UniteLabel
		}
		ops = append(ops, text(qte, colQte.x, y, colQte.w, "", 8, colQte.align))
		ops = append(ops, text(FormatCents(l.PrixUnitaireTTCCents, doc.Devise), colPU.x, y, colPU.w, "", 8, colPU.align))
		ops = append(ops, text(FormatTaux(l.TauxTVA), colTVA.x, y, colTVA.w, "", 8, colTVA.align))
		ops = append(ops, text(FormatCents(l.TotalTTCCents, doc.Devise), colTotal.x, y, colTotal.w, "", 8, colTotal.align))
		y += rowH
	}

	y += 2
	ops = append(ops, rule(y))
	y += 4

	// Totals, right-aligned; TTC bold.
	totalsLabelX := Margin + 0.55*contentW
	totalsLabelW := 0.25 * contentW
	ops = append(ops, text("Total HT", totalsLabelX, y, totalsLabelW, "", 9, "R"))
	ops = append(ops, text(FormatCents(doc.Totaux.HTCents, doc.Devise), colTotal.x, y, colTotal.w, "", 9, colTotal.align))
	y += LineH
	ops = append(ops, text("TVA", totalsLabelX, y, totalsLabelW, "", 9, "R"))
	ops = append(ops, text(FormatCents(doc.Totaux.TVACents, doc.Devise), colTotal.x, y, colTotal.w, "", 9, colTotal.align))
	y += LineH
	ops = append(ops, text("Total TTC", totalsLabelX, y, totalsLabelW, "B", 10, "R"))
	ops = append(ops, text(FormatCents(doc.Totaux.TTCCents, doc.Devise), colTotal.x, y, colTotal.w, "B", 10, colTotal.align))
	y += LineH + 6

	// Order / pickup reference codes in small muted text.
	if doc.Contexte != nil {
		ref := "Commande " + doc.Contexte.CodeCommande
		if doc.Contexte.CodeRetrait != "" {
			ref += "  ·  Code retrait " + doc.Contexte.CodeRetrait
		}
		ops = append(ops, Op{Kind: OpText, Text: ref, X: Margin, Y: y, W: contentW, H: LineH, Style: "I", Size: 7, Align: "L", Gray: 128})
	}

	return ops
}

// partieLines flattens an address block to its display lines, dropping
// blanks and honoring the VAT exemption regime.
func partieLines(p Partie) []string {
	lines := []string{p.Nom}
	for _, a := range p.AdresseLignes {
		if a != "" {
			lines = append(lines, a)
		}
	}
	if p.CodePostalVille != "" {
		lines = append(lines, p.CodePostalVille)
	}
	if p.Siret != "" {
		lines = append(lines, "SIRET : "+p.Siret)
	}
	if p.NumeroTVA != "" && !p.FranchiseTVA {
		lines = append(lines, "TVA : "+p.NumeroTVA)
	}
	return lines
}
