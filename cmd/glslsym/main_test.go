package main

import (
	"testing"

	"github.com/ComedicChimera/olive"

	"github.com/funvibe/glslsym/internal/config"
)

func TestApplyGlobalArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		fileLevel string
		want      string
	}{
		{"not given keeps the file", map[string]interface{}{}, "verbose", "verbose"},
		{"explicit warn overrides the file", map[string]interface{}{"loglevel": "warn"}, "verbose", "warn"},
		{"explicit warn over silent", map[string]interface{}{"loglevel": "warn"}, "silent", "warn"},
		{"explicit error", map[string]interface{}{"loglevel": "error"}, "warn", "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.DefaultSettings()
			settings.LogLevel = tt.fileLevel
			applyGlobalArgs(settings, &olive.ArgParseResult{Arguments: tt.args})
			if settings.LogLevel != tt.want {
				t.Errorf("log level = %q, want %q", settings.LogLevel, tt.want)
			}
		})
	}

	settings := config.DefaultSettings()
	applyGlobalArgs(settings, &olive.ArgParseResult{Arguments: map[string]interface{}{"manifest": "env.yaml"}})
	if settings.Manifest != "env.yaml" {
		t.Errorf("manifest = %q", settings.Manifest)
	}
}
