package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/se2de/engine/internal/config"
	"github.com/se2de/engine/internal/platform"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{fmt.Errorf("frame: %w", platform.ErrInterrupted), exitInterrupted},
		{context.Canceled, exitInterrupted},
		{errors.New("invalid data in scene x: boom"), exitError},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, false},
		{config.LoggingConfig{Level: "warn", Format: "json"}, false},
		{config.LoggingConfig{Level: "info"}, false},
		{config.LoggingConfig{Level: "bogus", Format: "console"}, true},
		{config.LoggingConfig{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		log, err := newLogger(tt.cfg, "test")
		if (err != nil) != tt.wantErr {
			t.Errorf("newLogger(%+v) error = %v, wantErr %t", tt.cfg, err, tt.wantErr)
			continue
		}
		if log != nil {
			log.Sync()
		}
	}
}
