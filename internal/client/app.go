// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/service"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/models"
)

const role = "go-transcriber"

// App is the command-line client. The command tree is built once; the
// runtime (config, storages, adapter, services) is opened per invocation by
// the root command and released when Run returns.
type App struct {
	buildInfo models.AppBuildInfo

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// newLogger is called once the log level is known.
	newLogger func(level string) *logger.Logger

	readPassword func(prompt string) (string, error)

	cfg      *config.ClientConfig
	logger   *logger.Logger
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	services *service.ClientServices
	printer  *printer
}

// Option configures an App.
type Option func(*App)

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
		a.errOut = errOut
	}
}

// WithLogger makes every invocation log to l regardless of the configured
// level.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.newLogger = func(string) *logger.Logger { return l }
	}
}

// WithPasswordReader replaces the terminal password prompt.
func WithPasswordReader(read func(prompt string) (string, error)) Option {
	return func(a *App) {
		a.readPassword = read
	}
}

// NewApp creates the client for the given build.
func NewApp(buildInfo models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		buildInfo: buildInfo,
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		newLogger: func(level string) *logger.Logger {
			return logger.NewClientLogger(role, level)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.readPassword == nil {
		a.readPassword = a.promptPassword
	}
	return a
}

var _ Client = (*App)(nil)

// Run executes the command named by args.
func (a *App) Run(ctx context.Context, args []string) error {
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if closeErr := a.close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

// configure loads the configuration from the flags of cmd and prepares the
// logger and the printer.
func (a *App) configure(cmd *cobra.Command) error {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	a.cfg = cfg
	a.logger = a.newLogger(cfg.App.LogLevel)
	a.printer = newPrinter(a.out, cfg.App.Output)

	a.logger.Debug().Any("config", cfg).Str("command", cmd.CommandPath()).Msg("received configs")
	return nil
}

// open wires storages, the adapter and the services. configure must run
// first.
func (a *App) open(cmd *cobra.Command) error {
	cfg := a.cfg

	storages, err := store.NewClientStorages(cmd.Context(), cfg.Storage, a.logger)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	a.storages = storages

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, storages.Session, a.logger)
	if err != nil {
		return fmt.Errorf("create service adapter: %w", err)
	}

	a.adapter = serverAdapter
	a.services = service.NewClientServices(
		storages,
		serverAdapter,
		service.NewPollPolicy(cfg.Workers),
		a.buildInfo,
		a.logger,
	)

	return nil
}

func (a *App) close() error {
	if a.services != nil {
		a.services.Session.Teardown()
	}
	err := a.storages.Close()
	a.storages = nil
	a.adapter = nil
	a.services = nil
	return err
}

// requireUser restores the session and fails when nobody is logged in.
func (a *App) requireUser(ctx context.Context) (models.Session, error) {
	session := a.services.Session.Initialize(ctx)
	if !session.LoggedIn() {
		return session, ErrNotLoggedIn
	}
	return session, nil
}
