// Info panel with image details and similarity metrics
package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-filter-studio/internal/core"
	"image-filter-studio/internal/editor"
	"image-filter-studio/internal/metrics"
)

// InfoPanel shows the session state and how far current has moved from original
type InfoPanel struct {
	container *fyne.Container

	stateLabel    *widget.Label
	originalLabel *widget.Label
	currentLabel  *widget.Label
	levelLabel    *widget.Label
	metricValues  map[string]*widget.Label
}

func NewInfoPanel(evaluator *metrics.Evaluator) *InfoPanel {
	ip := &InfoPanel{
		stateLabel:    widget.NewLabel(""),
		originalLabel: widget.NewLabel(""),
		currentLabel:  widget.NewLabel(""),
		levelLabel:    widget.NewLabel(""),
		metricValues:  make(map[string]*widget.Label),
	}

	details := container.NewVBox(ip.stateLabel, ip.originalLabel, ip.currentLabel)

	grid := container.NewGridWithColumns(3)
	for _, name := range evaluator.Names() {
		metric, _ := evaluator.Get(name)
		value := widget.NewLabel("-")
		ip.metricValues[name] = value

		description := widget.NewLabel(metric.GetDescription())
		description.TextStyle = fyne.TextStyle{Italic: true}
		grid.Add(widget.NewLabel(metric.GetName()))
		grid.Add(value)
		grid.Add(description)
	}

	ip.container = container.NewVBox(
		widget.NewCard("Image", "", details),
		widget.NewCard("Similarity to Original", "", container.NewVBox(ip.levelLabel, grid)),
	)
	return ip
}

func (ip *InfoPanel) GetContainer() fyne.CanvasObject {
	return ip.container
}

func (ip *InfoPanel) Update(snap editor.Snapshot) {
	ip.stateLabel.SetText("State: " + snap.State.String())

	if snap.State == core.StateEmpty {
		ip.originalLabel.SetText("Original: -")
		ip.currentLabel.SetText("Current: -")
		ip.levelLabel.SetText("")
		for _, value := range ip.metricValues {
			value.SetText("-")
		}
		return
	}

	ip.originalLabel.SetText("Original: " + snap.Original.String())
	ip.currentLabel.SetText("Current: " + snap.Current.String())

	report := snap.Report
	if report.Comparable {
		ip.levelLabel.SetText(fmt.Sprintf("Change: %s (%.1f%% similar)", report.Level, report.Score))
	} else {
		ip.levelLabel.SetText("Change: size differs from original")
	}

	for key, value := range ip.metricValues {
		v, ok := report.Metrics[key]
		value.SetText(formatMetric(v, ok))
	}
}

func formatMetric(v float64, ok bool) string {
	switch {
	case !ok:
		return "-"
	case math.IsInf(v, 1):
		return "∞"
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
