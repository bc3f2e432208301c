// Package logger holds the process-wide zerolog logger.
//
// cmd/portal calls Init once after loading configuration; everything else
// receives the logger through its constructor.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	Level   string    // trace, debug, info, warn or error; info otherwise
	Pretty  bool      // console output for local development
	Output  io.Writer // os.Stdout when nil
	Service string
	Version string
}

var (
	mu       sync.Mutex
	once     sync.Once
	instance *zerolog.Logger
)

// New builds a logger from opts without touching the singleton.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	fields := zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	if opts.Version != "" {
		fields = fields.Str("version", opts.Version)
	}
	if opts.Pretty {
		fields = fields.Caller()
	}
	return fields.Logger()
}

// Init builds the process logger on first use and returns it. Later calls
// return the same logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opts)
		zerolog.SetGlobalLevel(l.GetLevel())
		instance = &l
	})
	return *instance
}

// Get returns the logger built by Init and panics when Init was never called.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// Reset forgets the process logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	instance = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
