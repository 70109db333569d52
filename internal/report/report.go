// Package report renders estimation results for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ptrack/internal/estimate"
	"github.com/san-kum/ptrack/internal/inference"
)

// MLESummary lays out the grid-search result with the confidence band.
func MLESummary(res *estimate.MLEResult, unknown inference.Unknown) string {
	var b strings.Builder
	b.WriteString(Title.Render("maximum likelihood estimate") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Label.Render(unknown.String()+" ="), Value.Render(fmt.Sprintf("%.4g", res.Best)))
	fmt.Fprintf(&b, "%s [%.4g, %.4g]\n", Label.Render("68% band"), res.CIMin, res.CIMax)
	fmt.Fprintf(&b, "%s %.4f\n", Label.Render("max loglik"), res.LogLik[res.BestIndex])
	if res.EdgeTouching() {
		b.WriteString(Warn.Render("confidence band touches the grid edge; widen the range") + "\n")
	}
	if res.Disjoint {
		b.WriteString(Warn.Render("likelihood is multimodal at this resolution; band covers the global maximum only") + "\n")
	}
	return b.String()
}

// LogLikSketch draws the log-likelihood curve over the grid. Points at
// -Inf (infeasible region) are pinned just below the finite minimum so
// the curve stays drawable.
func LogLikSketch(res *estimate.MLEResult, caption string) string {
	finiteMin := math.Inf(1)
	for _, v := range res.LogLik {
		if !math.IsInf(v, -1) && v < finiteMin {
			finiteMin = v
		}
	}

	data := make([]float64, len(res.LogLik))
	for i, v := range res.LogLik {
		if math.IsInf(v, -1) {
			v = finiteMin - 1
		}
		data[i] = v
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// CGWTable writes the MSD curve as a lag/MSD/sigma table.
func CGWTable(w io.Writer, curve *estimate.MSDCurve) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LAG\tMSD\tSIGMA\tNIND")
	for i, lag := range curve.Lags {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t%.1f\n",
			lag, curve.MSD[i], curve.Sigma[i], estimate.NIndependent(curve.N, lag))
	}
	tw.Flush()
}

// MSDSketch draws the finite part of the MSD curve.
func MSDSketch(curve *estimate.MSDCurve, caption string) string {
	data := make([]float64, 0, len(curve.MSD))
	for _, v := range curve.MSD {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return Warn.Render("no finite MSD samples to draw")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
