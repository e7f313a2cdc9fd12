package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"golang.org/x/term"

	"ctsim/internal/store"
)

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or 80 when unknown.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

type sinkOptions struct {
	stdout    bool // print each record to stdout
	printOnly bool // never write to GreptimeDB
	logFile   string
	storeDir  string
}

// sinks holds the configured result writers and the optional run store.
type sinks struct {
	writer store.ResultWriter
	store  *store.BadgerStore
	closer []func() error
}

func (s *sinks) close() {
	for _, c := range s.closer {
		if err := c(); err != nil {
			slog.Warn("close sink", "error", err)
		}
	}
}

// newSinks sets up result writers based on flags and env vars. The writer is
// nil when nothing was requested.
func newSinks(opts sinkOptions, log *slog.Logger) (*sinks, error) {
	s := &sinks{}
	var ws []store.ResultWriter
	if opts.stdout {
		ws = append(ws, stdoutWriter())
	}
	if !opts.printOnly && os.Getenv("GREPTIMEDB_ENDPOINT") != "" {
		gw, err := greptimeWriter(log)
		if err != nil {
			return nil, err
		}
		ws = append(ws, gw)
	}
	if opts.logFile != "" {
		fw, err := store.NewFileWriter(opts.logFile)
		if err != nil {
			s.close()
			return nil, err
		}
		ws = append(ws, fw)
		s.closer = append(s.closer, fw.Close)
	}
	if opts.storeDir != "" {
		bs, err := store.OpenBadgerStore(opts.storeDir, log)
		if err != nil {
			s.close()
			return nil, err
		}
		ws = append(ws, bs)
		s.store = bs
		s.closer = append(s.closer, bs.Close)
	}
	switch len(ws) {
	case 0:
	case 1:
		s.writer = ws[0]
	default:
		s.writer = store.NewMultiWriter(ws...)
	}
	return s, nil
}

// stdoutWriter prints colored summaries on a terminal and JSON lines otherwise.
func stdoutWriter() store.ResultWriter {
	if isTerminal() {
		return store.NewSummaryWriter(true)
	}
	return store.NewJSONStdoutWriter()
}

func greptimeWriter(log *slog.Logger) (*store.GreptimeDBWriter, error) {
	host, port, err := parseEndpoint(os.Getenv("GREPTIMEDB_ENDPOINT"))
	if err != nil {
		return nil, err
	}
	return store.NewGreptimeDBWriter(
		host, port,
		envOr("GREPTIMEDB_DATABASE", "public"),
		os.Getenv("GREPTIMEDB_TABLE"),
		os.Getenv("GREPTIMEDB_PROFILE_TABLE"),
		log,
	)
}

// parseEndpoint splits "host" or "host:port". A missing port returns 0.
func parseEndpoint(ep string) (string, int, error) {
	host, p, err := net.SplitHostPort(ep)
	if err != nil {
		return ep, 0, nil
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid GREPTIMEDB_ENDPOINT port %q", p)
	}
	return host, port, nil
}
