package jets

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/gojets/algebra"
)

// Option configures the general component computations.
type Option func(*options)

type options struct {
	engine *algebra.Engine
	log    *zap.Logger
	order  string
}

// WithEngine runs the Gröbner computations on e.
func WithEngine(e *algebra.Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithLogger logs algorithm progress to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithOrder sets the monomial order of the jet ring the result lives in.
func WithOrder(spec string) Option {
	return func(o *options) { o.order = spec }
}

func newOptions(opts []Option) *options {
	o := &options{order: "grevlex"}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.engine == nil {
		o.engine = algebra.NewEngine(algebra.WithLogger(o.log))
	}
	return o
}

// appendBlock extends an order spec over n variables with a grevlex block
// of extra variables.
func appendBlock(spec string, n, extra int) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "grevlex"
	}
	if !strings.Contains(spec, "(") {
		spec = fmt.Sprintf("%s(%d)", spec, n)
	}
	return fmt.Sprintf("%s,grevlex(%d)", spec, extra)
}
