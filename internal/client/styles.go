// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-transcriber/models"
)

// styles are bound to the output stream so that colors are dropped when the
// output is not a terminal.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	help   lipgloss.Style
	cell   lipgloss.Style
	header lipgloss.Style
	status map[models.TranscriptionStatus]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		title:  r.NewStyle().Bold(true),
		label:  r.NewStyle().Faint(true),
		help:   r.NewStyle().Faint(true),
		cell:   r.NewStyle().Padding(0, 1),
		header: r.NewStyle().Padding(0, 1).Bold(true),
		status: map[models.TranscriptionStatus]lipgloss.Style{
			models.StatusPending:    r.NewStyle().Faint(true),
			models.StatusProcessing: r.NewStyle().Foreground(lipgloss.Color("11")),
			models.StatusCompleted:  r.NewStyle().Foreground(lipgloss.Color("10")),
			models.StatusFailed:     r.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

// statusLabel renders the display label of s. Unknown statuses use the
// pending look, matching their label.
func (s styles) statusLabel(status models.TranscriptionStatus) string {
	if !status.Known() {
		status = models.StatusPending
	}
	return s.status[status].Render(status.Label())
}
