package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Render plays the document's op list onto a single A4 portrait page and
// returns the PDF bytes. Width measurements come from fpdf's own font
// metrics so the wrap budget matches what actually fits.
func Render(doc Document) ([]byte, error) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(Margin, Margin, Margin)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	width := func(text, style string, size float64) float64 {
		p.SetFont(fontFamily, style, size)
		return p.GetStringWidth(text)
	}

	for _, op := range Layout(doc, width) {
		switch op.Kind {
		case OpText:
			p.SetFont(fontFamily, op.Style, op.Size)
			p.SetTextColor(op.Gray, op.Gray, op.Gray)
			p.SetXY(op.X, op.Y)
			p.CellFormat(op.W, op.H, op.Text, "", 0, op.Align, false, 0, "")
		case OpLine:
			p.SetDrawColor(0, 0, 0)
			p.Line(op.X, op.Y, op.X2, op.Y2)
		}
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render facture %s: %w", doc.Numero, err)
	}
	return buf.Bytes(), nil
}
