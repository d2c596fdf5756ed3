// Package usageplot draws codon usage tables.
package usageplot

import (
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"bitbucket.org/Davydov/espresso/bio"
	"bitbucket.org/Davydov/espresso/cmodel"
)

// Default image size.
var (
	Width  = 16 * vg.Inch
	Height = 5 * vg.Inch
)

// senseCodons returns the 61 sense codons grouped by residue and
// their labels R:CODON.
func senseCodons() (codons, labels []string) {
	for _, aa := range []byte(bio.Residues) {
		for _, c := range bio.Codons {
			if bio.TranslateCodon(c) == aa {
				codons = append(codons, c)
				labels = append(labels, string(aa)+":"+c)
			}
		}
	}
	return
}

// Plot creates a bar chart of the codon weights of the table.
func Plot(t *cmodel.Table, title string) (*plot.Plot, error) {
	codons, labels := senseCodons()
	values := make(plotter.Values, len(codons))
	for i, c := range codons {
		values[i] = t.Weight(bio.TranslateCodon(c), c)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Fraction of residue codons"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// Save saves the plot, the format is defined by the file extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}

// Write writes the plot in the format (e.g. svg, png, pdf).
func Write(p *plot.Plot, w io.Writer, format string) error {
	writer, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}
