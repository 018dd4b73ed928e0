// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/compositor/render"
)

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLoggerFrameDiagnostics(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tree, _, _ := newTestTree(t)
	h := newTestHost(t, tree, render.NewPixmapTarget(500, 500))
	drawFrame(t, h)

	out := buf.String()
	for _, want := range []string{"host created", "frame drawn", "full=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNil(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil after SetLogger(nil)")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
		}()
		go func() {
			defer wg.Done()
			_ = Logger()
		}()
	}
	wg.Wait()
}
