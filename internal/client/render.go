// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/models"
)

// printer writes command results in the configured format.
type printer struct {
	out    io.Writer
	format string
	styles styles
}

func newPrinter(out io.Writer, format string) *printer {
	return &printer{
		out:    out,
		format: format,
		styles: newStyles(out),
	}
}

// message is the structured form of results that carry no data.
type message struct {
	Message string `json:"message" yaml:"message"`
}

// structured encodes v as JSON or YAML. It reports false for table output.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case config.OutputJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func (p *printer) message(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if ok, err := p.structured(message{Message: text}); ok {
		return err
	}
	_, err := fmt.Fprintln(p.out, text)
	return err
}

func (p *printer) transcriptions(items []models.Transcription) error {
	if ok, err := p.structured(items); ok {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(p.out, p.styles.help.Render("No transcriptions yet."))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers("ID", "TITLE", "DATE", "STATUS", "CREATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.header
			}
			return p.styles.cell
		})

	for _, item := range items {
		t.Row(
			item.ID.String(),
			item.Title,
			formatDate(item.Date),
			p.styles.statusLabel(item.Status),
			item.CreatedAt.String(),
		)
	}

	_, err := fmt.Fprintln(p.out, t.Render())
	return err
}

func (p *printer) transcription(item models.Transcription) error {
	if ok, err := p.structured(item); ok {
		return err
	}

	var b strings.Builder
	b.WriteString(p.styles.title.Render(item.Title))
	b.WriteByte('\n')
	p.field(&b, "ID", item.ID.String())
	p.field(&b, "Date", formatDate(item.Date))
	p.field(&b, "Status", p.styles.statusLabel(item.Status))
	p.field(&b, "Created", item.CreatedAt.String())
	if item.InitialPrompt != nil && *item.InitialPrompt != "" {
		p.field(&b, "Prompt", *item.InitialPrompt)
	}
	if item.TranscriptionText != nil {
		b.WriteByte('\n')
		b.WriteString(p.styles.title.Render("Transcription"))
		b.WriteByte('\n')
		b.WriteString(*item.TranscriptionText)
		b.WriteByte('\n')
	}
	if item.ProcessedText != nil {
		b.WriteByte('\n')
		b.WriteString(p.styles.title.Render("Processed text"))
		b.WriteByte('\n')
		b.WriteString(*item.ProcessedText)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *printer) user(u models.User) error {
	if ok, err := p.structured(u); ok {
		return err
	}

	var b strings.Builder
	p.field(&b, "ID", fmt.Sprint(u.ID))
	p.field(&b, "Username", u.Username)
	p.field(&b, "Email", u.Email)
	p.field(&b, "Created", u.CreatedAt.String())

	_, err := io.WriteString(p.out, b.String())
	return err
}

// sessionView is the structured form of whoami.
type sessionView struct {
	User      models.User `json:"user" yaml:"user"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func (p *printer) session(s models.Session) error {
	view := sessionView{User: *s.User}
	if !s.ExpiresAt.IsZero() {
		view.ExpiresAt = &s.ExpiresAt
	}
	if ok, err := p.structured(view); ok {
		return err
	}

	if err := p.user(*s.User); err != nil {
		return err
	}
	if s.ExpiresAt.IsZero() {
		return nil
	}
	var b strings.Builder
	p.field(&b, "Expires", s.ExpiresAt.Local().Format(time.DateTime))
	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *printer) ack(id models.TranscriptionID, ack models.ProcessAck) error {
	if ok, err := p.structured(ack); ok {
		return err
	}
	_, err := fmt.Fprintf(p.out, "%s: %s\n", id, ack.Message)
	return err
}

func (p *printer) health(h models.Health) error {
	if ok, err := p.structured(h); ok {
		return err
	}
	_, err := fmt.Fprintf(p.out, "Service is %s\n", h.Status)
	return err
}

func (p *printer) buildInfo(info models.AppBuildInfo) error {
	if ok, err := p.structured(info); ok {
		return err
	}

	var b strings.Builder
	p.field(&b, "Build version", info.BuildVersion())
	p.field(&b, "Build date", info.BuildDate())
	p.field(&b, "Build commit", info.BuildCommit())

	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *printer) field(b *strings.Builder, name, value string) {
	b.WriteString(p.styles.label.Render(fmt.Sprintf("%-14s", name+":")))
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

func formatDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(time.DateOnly)
}
