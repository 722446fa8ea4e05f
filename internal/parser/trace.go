package parser

import (
	"log/slog"

	"gopkg.llgram.org/llpc/internal/ll"
)

// Recorder is a TraceSink that keeps the ordered rule numbers and ignores
// the enter/exit events.
type Recorder struct {
	rules []int
}

func (r *Recorder) Rule(n int) {
	r.rules = append(r.rules, n)
}

func (r *Recorder) Enter(proc string, tok *ll.Token) {}

func (r *Recorder) Exit(proc string, tok *ll.Token) {}

// Rules returns the trace recorded so far.
func (r *Recorder) Rules() []int {
	return r.rules
}

// NopSink returns a sink that discards all events.
func NopSink() ll.TraceSink {
	return nopSink{}
}

type nopSink struct{}

func (nopSink) Rule(n int) {}

func (nopSink) Enter(proc string, tok *ll.Token) {}

func (nopSink) Exit(proc string, tok *ll.Token) {}

// NewSlogSink returns a sink that logs every event through the given
// logger: rule applications at info, enter/exit events at debug.
func NewSlogSink(log *slog.Logger) ll.TraceSink {
	return &slogSink{log: log}
}

type slogSink struct {
	log *slog.Logger
}

func (s *slogSink) Rule(n int) {
	s.log.Info("rule", "n", n)
}

func (s *slogSink) Enter(proc string, tok *ll.Token) {
	s.log.Debug("enter", "proc", proc, "token", tok.String())
}

func (s *slogSink) Exit(proc string, tok *ll.Token) {
	s.log.Debug("exit", "proc", proc, "token", tok.String())
}

type multiSink []ll.TraceSink

func (m multiSink) Rule(n int) {
	for _, s := range m {
		s.Rule(n)
	}
}

func (m multiSink) Enter(proc string, tok *ll.Token) {
	for _, s := range m {
		s.Enter(proc, tok)
	}
}

func (m multiSink) Exit(proc string, tok *ll.Token) {
	for _, s := range m {
		s.Exit(proc, tok)
	}
}
