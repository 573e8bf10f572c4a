// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDGenerator_GenerateV7(t *testing.T) {
	id := NewRequestIDGenerator().Generate()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected uuid version 7, got %d", parsed.Version())
	}
}

func TestRequestIDGenerator_Unique(t *testing.T) {
	g := NewRequestIDGenerator()
	seen := make(map[string]struct{}, 100)

	for range 100 {
		id := g.Generate()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = struct{}{}
	}
}
