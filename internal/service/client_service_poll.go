// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/models"
)

// PollPolicy bounds AwaitTerminal. The first read happens after
// InitialDelay; the delay then doubles up to MaxDelay. At most MaxAttempts
// reads are made.
type PollPolicy struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
}

// NewPollPolicy builds a policy from the workers configuration.
func NewPollPolicy(cfg config.ClientWorkers) PollPolicy {
	return PollPolicy{
		InitialDelay: cfg.PollInitialDelay,
		MaxDelay:     cfg.PollMaxDelay,
		MaxAttempts:  cfg.PollMaxAttempts,
	}
}

// DefaultPollPolicy returns the built-in policy.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		InitialDelay: config.DefaultPollInitialDelay,
		MaxDelay:     config.DefaultPollMaxDelay,
		MaxAttempts:  config.DefaultPollMaxAttempts,
	}
}

// orDefault fills zero fields from fallback.
func (p PollPolicy) orDefault(fallback PollPolicy) PollPolicy {
	if p.InitialDelay <= 0 {
		p.InitialDelay = fallback.InitialDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = fallback.MaxDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = fallback.MaxAttempts
	}
	return p
}

func (p PollPolicy) backoff() retry.Backoff {
	b := retry.NewExponential(p.InitialDelay)
	b = retry.WithCappedDuration(p.MaxDelay, b)
	return retry.WithMaxRetries(uint64(p.MaxAttempts-1), b)
}

// AwaitTerminal implements [ClientTranscriptionService]. Pending and
// processing reads are retried; transport failures and 5xx answers are
// retried as well. Any other error stops the loop.
func (s *clientTranscriptionService) AwaitTerminal(ctx context.Context, id models.TranscriptionID, policy PollPolicy) (models.Transcription, error) {
	policy = policy.orDefault(s.poll)

	log := s.logger.With().
		Str("func", "clientTranscriptionService.AwaitTerminal").
		Str("transcription_id", id.String()).
		Logger()

	timer := time.NewTimer(policy.InitialDelay)
	select {
	case <-ctx.Done():
		timer.Stop()
		return models.Transcription{}, ctx.Err()
	case <-timer.C:
	}

	var (
		last     models.Transcription
		attempts int
	)
	item, err := retry.DoValue(ctx, policy.backoff(), func(ctx context.Context) (models.Transcription, error) {
		attempts++

		item, err := s.GetOne(ctx, id)
		if err != nil {
			if isTransient(err) {
				log.Debug().Err(err).Int("attempt", attempts).Msg("transient error while polling")
				return item, retry.RetryableError(err)
			}
			return item, err
		}

		last = item
		log.Debug().Int("attempt", attempts).Str("status", string(item.Status)).Msg("polled transcription")
		if item.Status.IsTerminal() {
			return item, nil
		}
		return item, retry.RetryableError(errNotTerminal)
	})

	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, errNotTerminal):
		return last, fmt.Errorf("%w: transcription %s is still %s after %d attempts",
			ErrPollExhausted, id, last.Status, attempts)
	case isTransient(err) && ctx.Err() == nil:
		return last, fmt.Errorf("%w after %d attempts: %w", ErrPollExhausted, attempts, err)
	default:
		return last, err
	}
}
