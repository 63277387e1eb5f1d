package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type bufferWriteCloser struct {
	sync.Mutex
	bytes.Buffer
}

func (b *bufferWriteCloser) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *bufferWriteCloser) Close() error { return nil }

func (b *bufferWriteCloser) String() string {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.String()
}

func TestBackendFiltersByWriterLevel(t *testing.T) {
	backend := NewBackendWithFlags(0)
	all := &bufferWriteCloser{}
	warnings := &bufferWriteCloser{}
	if err := backend.AddLogWriter(all, LevelTrace); err != nil {
		t.Fatalf("AddLogWriter: %s", err)
	}
	if err := backend.AddLogWriter(warnings, LevelWarn); err != nil {
		t.Fatalf("AddLogWriter: %s", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelDebug)
	log.Tracef("trace %d", 1)
	log.Debugf("debug %d", 2)
	log.Warnf("warn %d", 3)
	backend.Close()

	if strings.Contains(all.String(), "trace 1") {
		t.Fatalf("trace line written although the logger level is debug")
	}
	if !strings.Contains(all.String(), "[DBG] TEST: debug 2") {
		t.Fatalf("debug line missing from the trace writer: %q", all.String())
	}
	if strings.Contains(warnings.String(), "debug 2") {
		t.Fatalf("debug line written to the warning writer")
	}
	if !strings.Contains(warnings.String(), "[WRN] TEST: warn 3") {
		t.Fatalf("warn line missing from the warning writer: %q", warnings.String())
	}

	// Logging after Close must not panic
	log.Warnf("after close")
}

func TestParseAndSetLogLevels(t *testing.T) {
	first := RegisterSubSystem("TSTA")
	second := RegisterSubSystem("TSTB")

	if err := ParseAndSetLogLevels("debug"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %s", err)
	}
	if first.Level() != LevelDebug || second.Level() != LevelDebug {
		t.Fatalf("expected every subsystem at debug")
	}

	if err := ParseAndSetLogLevels("TSTA=trace,TSTB=error"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %s", err)
	}
	if first.Level() != LevelTrace || second.Level() != LevelError {
		t.Fatalf("unexpected levels: %s, %s", first.Level(), second.Level())
	}

	if err := ParseAndSetLogLevels("NOPE=trace"); err == nil {
		t.Fatalf("expected an unknown subsystem to be rejected")
	}
	if err := ParseAndSetLogLevels("loud"); err == nil {
		t.Fatalf("expected an unknown level to be rejected")
	}
	if err := ParseAndSetLogLevels("TSTA"); err == nil {
		t.Fatalf("expected an unknown level to be rejected")
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{input: "trace", expected: LevelTrace, ok: true},
		{input: "DBG", expected: LevelDebug, ok: true},
		{input: "Warn", expected: LevelWarn, ok: true},
		{input: "off", expected: LevelOff, ok: true},
		{input: "loud", expected: LevelInfo, ok: false},
	}
	for _, test := range tests {
		level, ok := LevelFromString(test.input)
		if level != test.expected || ok != test.ok {
			t.Fatalf("LevelFromString(%q): expected (%s, %t), got (%s, %t)",
				test.input, test.expected, test.ok, level, ok)
		}
	}
	if LevelOff.String() != "OFF" || LevelCritical.String() != "CRT" {
		t.Fatalf("unexpected level tags %s %s", LevelOff, LevelCritical)
	}
}

func TestFlagsFromEnv(t *testing.T) {
	if flags := flagsFromEnv("shortfile, longfile"); flags != LogFlagShortFile|LogFlagLongFile {
		t.Fatalf("unexpected flags %d", flags)
	}
	if flags := flagsFromEnv(""); flags != 0 {
		t.Fatalf("unexpected flags %d", flags)
	}
}
