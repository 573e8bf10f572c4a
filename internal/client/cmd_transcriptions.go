// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-transcriber/internal/service"
	"github.com/MKhiriev/go-transcriber/models"
)

// waitConcurrency bounds the records polled at the same time by wait.
const waitConcurrency = 4

// stdoutPath makes download write the document to standard output.
const stdoutPath = "-"

func newListCommand(a *App) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transcriptions",
		Long: `List the transcriptions of the logged in user, newest first.

With --cached the list saved by the last successful listing is shown and the
service is not contacted.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				items, err := a.services.Transcriptions.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				return a.printer.transcriptions(items)
			}

			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}
			items, err := a.services.Transcriptions.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.transcriptions(items)
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Show the locally saved list without contacting the service")

	return cmd
}

func newGetCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a transcription",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}
			item, err := a.services.Transcriptions.GetOne(cmd.Context(), models.TranscriptionID(args[0]))
			if err != nil {
				return err
			}
			return a.printer.transcription(item)
		},
	}
}

func newCreateCommand(a *App) *cobra.Command {
	var title, date, prompt, audioPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Upload a recording",
		Long: `Upload an audio recording as a new transcription.

The record starts as pending; run "transcriber process <id>" to start
processing. --date defaults to today.`,
		Example: `  transcriber create --title "Sprint review" --date 2024-03-01 --audio review.mp3`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.NewTranscription{
				Title:         title,
				Date:          date,
				InitialPrompt: prompt,
			}

			if audioPath != "" {
				f, err := os.Open(audioPath)
				if err != nil {
					return fmt.Errorf("open audio: %w", err)
				}
				defer f.Close()
				req.Audio = &models.AudioFile{Filename: filepath.Base(audioPath), Reader: f}
			}

			// local checks go first so that a bad request never reaches
			// the network
			if err := service.ValidateNewTranscription(req); err != nil {
				return err
			}
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}

			created, err := a.services.Transcriptions.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.transcription(created)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title of the recording")
	cmd.Flags().StringVarP(&date, "date", "d", time.Now().Format(time.DateOnly), "Date of the recording (YYYY-MM-DD)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Initial prompt for speech recognition")
	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Path to the audio file")

	return cmd
}

func newProcessCommand(a *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "process <id>",
		Short: "Start processing a transcription",
		Long: `Ask the service to process a transcription.

The command returns once the request is accepted. With --wait it then polls
the record until it is completed or failed.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := models.TranscriptionID(args[0])

			if _, err := a.requireUser(ctx); err != nil {
				return err
			}

			ack, err := a.services.Transcriptions.Process(ctx, id)
			if err != nil {
				return err
			}
			if !wait {
				return a.printer.ack(id, ack)
			}

			a.logger.Info().Str("transcription_id", id.String()).Str("status", ack.Status).Msg("processing accepted, waiting")

			item, err := a.services.Transcriptions.AwaitTerminal(ctx, id, service.NewPollPolicy(a.cfg.Workers))
			if err != nil {
				return err
			}
			if err := a.printer.transcription(item); err != nil {
				return err
			}
			return terminalError(item)
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait until processing finishes")

	return cmd
}

func newWaitCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wait <id>...",
		Short: "Wait until transcriptions finish processing",
		Long: `Poll one or more transcriptions until each is completed or failed.

Records are polled concurrently. The command fails if any record failed or
did not finish within the polling bound (see --poll-max-attempts).`,
		Args: minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireUser(ctx); err != nil {
				return err
			}

			policy := service.NewPollPolicy(a.cfg.Workers)
			results := make([]models.Transcription, len(args))

			var (
				mu   sync.Mutex
				errs []error
			)

			var g errgroup.Group
			g.SetLimit(waitConcurrency)
			for i, raw := range args {
				id := models.TranscriptionID(raw)
				g.Go(func() error {
					item, err := a.services.Transcriptions.AwaitTerminal(ctx, id, policy)
					if err == nil {
						err = terminalError(item)
					}
					if err != nil {
						mu.Lock()
						errs = append(errs, fmt.Errorf("%s: %w", id, err))
						mu.Unlock()
						return nil
					}
					results[i] = item
					return nil
				})
			}
			_ = g.Wait()

			done := make([]models.Transcription, 0, len(results))
			for _, item := range results {
				if item.ID != "" {
					done = append(done, item)
				}
			}
			if len(done) > 0 {
				if err := a.printer.transcriptions(done); err != nil {
					return err
				}
			}

			return errors.Join(errs...)
		},
	}
}

func newDownloadCommand(a *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Save the document of a completed transcription",
		Long: `Download the generated document of a completed transcription.

The file name suggested by the service is used unless --file is given; "-"
writes the document to standard output.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := models.TranscriptionID(args[0])

			if _, err := a.requireUser(ctx); err != nil {
				return err
			}

			item, err := a.services.Transcriptions.GetOne(ctx, id)
			if err != nil {
				return err
			}
			if !service.CanDownload(item) {
				return fmt.Errorf("%w: %s is %s", ErrNotCompleted, id, item.Status.Label())
			}

			doc, err := a.services.Transcriptions.Download(ctx, id)
			if err != nil {
				return err
			}

			if output == stdoutPath {
				_, err = a.out.Write(doc.Data)
				return err
			}

			path := output
			if path == "" {
				path = doc.Filename
			}
			if path == "" {
				path = models.DocumentFilename(item)
			}

			if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
				return fmt.Errorf("save document: %w", err)
			}
			return a.printer.message("Saved %d bytes to %s", len(doc.Data), path)
		},
	}

	cmd.Flags().StringVarP(&output, "file", "o", "", `Destination file ("-" for standard output)`)

	return cmd
}

func newDeleteCommand(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transcription",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := models.TranscriptionID(args[0])

			if _, err := a.requireUser(ctx); err != nil {
				return err
			}

			if !yes {
				ok, err := a.confirm(fmt.Sprintf("Delete transcription %s?", id))
				if err != nil {
					return err
				}
				if !ok {
					return ErrAborted
				}
			}

			if err := a.services.Transcriptions.Delete(ctx, id); err != nil {
				return err
			}
			return a.printer.message("Deleted transcription %s", id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func terminalError(item models.Transcription) error {
	if item.Status == models.StatusFailed {
		return fmt.Errorf("%w: %s", ErrTerminalFailed, item.ID)
	}
	return nil
}
