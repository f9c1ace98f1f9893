package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Policy decides what a rejected line does to the rest of the pass.
type Policy int

const (
	// PolicyAbort stops at the first rejected line and returns no Problem.
	PolicyAbort Policy = iota
	// PolicyCollect skips rejected lines and returns the Problem together
	// with an ErrorList.
	PolicyCollect
)

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicyCollect:
		return "collect"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps "abort" or "collect" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return PolicyAbort, nil
	case "collect":
		return PolicyCollect, nil
	}
	return PolicyAbort, fmt.Errorf("unknown parse policy %q", s)
}

type Options struct {
	Policy Policy
	// Verbose echoes accepted lines and section contents to Logger.
	Verbose bool
	Logger  *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
