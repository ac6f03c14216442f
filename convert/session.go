// Package convert holds the state shared by the converters while a single document is converted: synthetic
// names, warnings and the errors of nodes that were skipped.
package convert

import (
	"fmt"

	"go.uber.org/multierr"

	"go.viam.com/sdfmjcf/logging"
)

// Session is the conversion state of one document. It is not safe for concurrent use; a new Session is made
// for every document so synthetic names restart at zero.
type Session struct {
	logger   logging.Logger
	counter  int
	used     map[string]map[string]bool
	warnings []string
	errs     []error
}

// NewSession returns an empty session logging to logger.
func NewSession(logger logging.Logger) *Session {
	return &Session{logger: logger, used: map[string]map[string]bool{}}
}

// Logger returns the logger of the session.
func (s *Session) Logger() logging.Logger {
	return s.logger
}

// names returns the names used for kind, the namespace of an element type. The counter is shared by all kinds.
func (s *Session) names(kind string) map[string]bool {
	names, ok := s.used[kind]
	if !ok {
		names = map[string]bool{}
		s.used[kind] = names
	}
	return names
}

// NextName returns a synthetic name "<kind>_<n>" that has not been used for kind in this session.
func (s *Session) NextName(kind string) string {
	names := s.names(kind)
	for {
		name := fmt.Sprintf("%s_%d", kind, s.counter)
		s.counter++
		if !names[name] {
			names[name] = true
			return name
		}
	}
}

// UniqueName records name as used for kind and returns it, or returns a synthetic name when name is empty or
// already taken.
func (s *Session) UniqueName(name, kind string) string {
	if name == "" {
		return s.NextName(kind)
	}
	names := s.names(kind)
	if names[name] {
		renamed := s.NextName(kind)
		s.Warnf("%s name %q is already used, renamed to %q", kind, name, renamed)
		return renamed
	}
	names[name] = true
	return name
}

// Warnf records a warning about input that was converted with a loss or normalized.
func (s *Session) Warnf(template string, args ...interface{}) {
	msg := fmt.Sprintf(template, args...)
	s.logger.Warn(msg)
	s.warnings = append(s.warnings, msg)
}

// Warn records each of the warnings.
func (s *Session) Warn(warnings ...string) {
	for _, w := range warnings {
		s.Warnf("%s", w)
	}
}

// Fail records the error of a node that was skipped. The conversion carries on with its siblings.
func (s *Session) Fail(err error) {
	if err == nil {
		return
	}
	s.logger.Warnw("skipping element", "error", err)
	s.errs = append(s.errs, err)
}

// Warnings returns the warnings recorded so far.
func (s *Session) Warnings() []string {
	return s.warnings
}

// Errors returns the errors of skipped nodes recorded so far.
func (s *Session) Errors() []error {
	return s.errs
}

// Err combines the errors of skipped nodes, or returns nil when no node was skipped.
func (s *Session) Err() error {
	return multierr.Combine(s.errs...)
}
