// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var output JSONOutput
	var buffer bytes.Buffer

	done, err := output.EmitJSON(&buffer, map[string]string{"algorithm": "sha256"})
	if done || err != nil {
		t.Fatalf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}
	if buffer.Len() != 0 {
		t.Errorf("EmitJSON without --json wrote %q", buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, map[string]string{"algorithm": "sha256"})
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v), want (true, nil)", done, err)
	}
	if want := "{\n  \"algorithm\": \"sha256\"\n}\n"; buffer.String() != want {
		t.Errorf("EmitJSON wrote %q, want %q", buffer.String(), want)
	}
}

func TestEmitJSON_NilSlice(t *testing.T) {
	output := JSONOutput{OutputJSON: true}
	var buffer bytes.Buffer

	var digests []string
	if _, err := output.EmitJSON(&buffer, digests); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("EmitJSON(nil slice) = %q, want []", got)
	}
}

func TestHighlightJSON(t *testing.T) {
	var buffer bytes.Buffer
	if err := HighlightJSON(&buffer, "{\"digest\": \"00ff\"}\n"); err != nil {
		t.Fatalf("HighlightJSON: %v", err)
	}
	output := buffer.String()
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("HighlightJSON output has no escape sequences: %q", output)
	}
	if !strings.Contains(output, "00ff") || !strings.Contains(output, "digest") {
		t.Errorf("HighlightJSON lost content: %q", output)
	}
}

func TestWriteJSONPlainForNonTerminal(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteJSON(&buffer, []int{1, 2}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if want := "[\n  1,\n  2\n]\n"; buffer.String() != want {
		t.Errorf("WriteJSON wrote %q, want %q", buffer.String(), want)
	}
}

func TestNewLogger(t *testing.T) {
	var text, structured bytes.Buffer

	NewLogger(&text, true, slog.LevelInfo).Info("hashed", "values", 2)
	if !strings.Contains(text.String(), "msg=hashed values=2") {
		t.Errorf("text logger wrote %q", text.String())
	}

	NewLogger(&structured, false, slog.LevelInfo).Info("hashed", "values", 2)
	if !strings.Contains(structured.String(), `"msg":"hashed","values":2`) {
		t.Errorf("JSON logger wrote %q", structured.String())
	}

	structured.Reset()
	NewLogger(&structured, false, slog.LevelWarn).Info("dropped")
	if structured.Len() != 0 {
		t.Errorf("info record passed a warn-level logger: %q", structured.String())
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			t.Setenv(LogLevelEnvVar, test.value)
			if got := LevelFromEnv(); got != test.want {
				t.Errorf("LevelFromEnv() = %v, want %v", got, test.want)
			}
		})
	}
}
