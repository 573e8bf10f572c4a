// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptPassword reads a password without echo when stdin is a terminal and
// a plain line otherwise.
func (a *App) promptPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(a.errOut, prompt)

	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	return a.readLine()
}

// confirm asks a yes/no question on stderr. Anything but "y" or "yes" is a
// no.
func (a *App) confirm(question string) (bool, error) {
	_, _ = fmt.Fprintf(a.errOut, "%s [y/N]: ", question)

	answer, err := a.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (a *App) readLine() (string, error) {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.in)
	}

	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
