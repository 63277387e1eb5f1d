package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// Flags that add the logging callsite to every line.
const (
	// LogFlagLongFile adds the full path and line of the callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line of the callsite, e.g. main.go:123.
	// It takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// logFlagsEnvVar holds a comma separated list of callsite flags: longfile, shortfile
const logFlagsEnvVar = "ARGUS_LOGFLAGS"

const (
	normalLogSize = 512
	logsBuffer    = 128

	defaultThresholdKB = 10 * 1000 // rotate at 10 MB
	defaultMaxRolls    = 3
)

// defaultFlags is a variable rather than set in init() because BackendLog,
// which depends on it, is itself initialized at package level.
var defaultFlags = flagsFromEnv(os.Getenv(logFlagsEnvVar))

func flagsFromEnv(value string) uint32 {
	var flags uint32
	for _, name := range strings.Split(value, ",") {
		switch strings.TrimSpace(name) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

// leveledWriter is a log destination together with the lowest level it accepts
type leveledWriter struct {
	io.WriteCloser
	minimumLevel Level
}

// Backend fans log lines out to its writers from a single goroutine.
// Writers must all be added before Run.
type Backend struct {
	flag      uint32
	isRunning uint32
	isClosed  uint32
	writers   []leveledWriter
	writeChan chan logEntry

	// held by the writing goroutine until writeChan is drained
	syncClose sync.Mutex
}

// NewBackendWithFlags creates a backend with the given callsite flags instead
// of the ones read from ARGUS_LOGFLAGS
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flag: flags, writeChan: make(chan logEntry, logsBuffer)}
}

// NewBackend creates a backend configured from ARGUS_LOGFLAGS
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

// AddLogFile adds a rotating log file receiving logLevel and above, creating
// the file and its directory if needed
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogWriter adds a writer receiving logLevel and above
func (b *Backend) AddLogWriter(logWriter io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("cannot add a log writer to a running backend")
	}
	b.writers = append(b.writers, leveledWriter{WriteCloser: logWriter, minimumLevel: logLevel})
	return nil
}

// AddLogFileWithCustomRotator is AddLogFile with explicit rotation settings
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("cannot add a log file to a running backend")
	}
	if logDir := filepath.Dir(logFile); logDir != "." {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	fileRotator, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create a rotator for %s", logFile)
	}
	return b.AddLogWriter(fileRotator, logLevel)
}

// Run starts writing log entries in a background goroutine. It may be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the log backend is already running")
	}
	b.syncClose.Lock()
	go func() {
		defer func() {
			if err := recover(); err != nil {
				fmt.Fprintf(os.Stderr, "Fatal error in the log backend: %+v\n%s\n", err, debug.Stack())
			}
		}()
		b.writeEntries()
	}()
	return nil
}

func (b *Backend) writeEntries() {
	defer b.syncClose.Unlock()
	defer atomic.StoreUint32(&b.isRunning, 0)

	for entry := range b.writeChan {
		for _, writer := range b.writers {
			if entry.level >= writer.minimumLevel {
				_, _ = writer.Write(entry.log)
			}
		}
	}
}

// IsRunning returns whether Run was called and the backend wasn't closed yet
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close flushes pending entries and closes every writer
func (b *Backend) Close() {
	if !atomic.CompareAndSwapUint32(&b.isClosed, 0, 1) {
		return
	}
	close(b.writeChan)

	b.syncClose.Lock()
	defer b.syncClose.Unlock()
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger returns a logger tagged with subsystemTag, at LevelInfo
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{lvl: LevelInfo, tag: subsystemTag, b: b, writeChan: b.writeChan}
}
