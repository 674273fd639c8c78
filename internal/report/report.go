// Package report renders solved nest designs and sweep results for the
// terminal and exports sweeps to a workbook.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/coilworks/coilnest/internal/helicoil"
	"github.com/coilworks/coilnest/internal/nest"
	"github.com/coilworks/coilnest/internal/sweep"
)

// CoilPanel renders one coil record as a bordered key/value panel.
func CoilPanel(c helicoil.CoilData) string {
	rows := []struct {
		label string
		value string
	}{
		{"wire diameter", fmt.Sprintf("%.2f mm", c.WireDiameter)},
		{"mean diameter", fmt.Sprintf("%.2f mm", c.MeanDiameter)},
		{"outer diameter", fmt.Sprintf("%.2f mm", c.OuterDiameter)},
		{"active coils", fmt.Sprintf("%.2f", c.ActiveCoils)},
		{"rate", fmt.Sprintf("%.2f N/mm", c.Rate)},
		{"load at design length", fmt.Sprintf("%.0f N", c.Load)},
		{"free length", fmt.Sprintf("%.2f mm", c.FreeLength)},
		{"solid length", fmt.Sprintf("%.2f mm", c.SolidLength)},
		{"min service length", fmt.Sprintf("%.2f mm", c.MinLength)},
		{"coil gap at min length", fmt.Sprintf("%.2f mm", c.CoilGap)},
		{"solid stress", fmt.Sprintf("%.0f MPa", c.SolidStress)},
		{"stress limit", fmt.Sprintf("%.0f MPa", c.StressLimit)},
		{"material", c.Material},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Label))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-23s", row.label)))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(row.value))
	}
	return panelStyle.Render(b.String())
}

// NestReport renders both coil panels side by side with a solver summary.
func NestReport(sol *nest.Solution) string {
	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		CoilPanel(sol.Outer), " ", CoilPanel(sol.Inner))
	summary := labelStyle.Render(fmt.Sprintf(
		"converged in %d iterations, residual norm %.2e",
		sol.Diagnostic.Iterations, sol.Diagnostic.Norm))
	return panels + "\n" + summary
}

// SweepTable renders one row per sweep iteration.
func SweepTable(points []sweep.Point) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("reserve    nest OD    L0 outer-inner"))
	for _, p := range points {
		b.WriteString("\n")
		if !p.Solved() {
			b.WriteString(fmt.Sprintf("%7.1f    ", p.SolidStressReserve))
			b.WriteString(warnStyle.Render("no solution"))
			continue
		}
		b.WriteString(fmt.Sprintf("%7.1f    %7.2f    %14.2f",
			p.SolidStressReserve, p.OD(), p.FreeLengthDelta()))
	}
	return b.String()
}

// ODPlot draws nest OD against the swept stress reserve. Failed iterations
// are skipped.
func ODPlot(points []sweep.Point, width, height int) string {
	data := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Solved() {
			data = append(data, p.OD())
		}
	}
	if len(data) < 2 {
		return warnStyle.Render("not enough solved points to plot")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("nest OD vs solid stress reserve"),
	)
}
