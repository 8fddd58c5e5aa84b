package calcore

import (
	"runtime"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of evaluating one expression of a batch.
type Result struct {
	// Src is the expression.
	Src string
	// Value is the rounded result. It is zero if Err is non-nil.
	Value float64
	// Err is the error from parsing or evaluating Src, if any.
	Err error
}

// BatchOption is an option for EvalAll.
type BatchOption interface {
	batchOption(*batchctx)
}

type batchctx struct {
	parallel int
	parse    []ParseOption
}

type (
	parallelopt int
	parseopts   []ParseOption
)

// Parallel sets the maximum number of expressions evaluated at once. Values
// less than 1 mean runtime.NumCPU().
func Parallel(n int) BatchOption {
	return parallelopt(n)
}

func (o parallelopt) batchOption(b *batchctx) {
	b.parallel = int(o)
}

// WithParseOptions sets the options used to parse each expression.
func WithParseOptions(opts ...ParseOption) BatchOption {
	return parseopts(opts)
}

func (o parseopts) batchOption(b *batchctx) {
	b.parse = append(b.parse, o...)
}

// EvalAll evaluates each of srcs independently and concurrently. The results
// are in the same order as srcs. If any expression fails, the error is a
// *multierror.Error holding a *LineError for each failure, in input order.
func EvalAll(srcs []string, opts ...BatchOption) ([]Result, error) {
	var b batchctx
	for _, opt := range opts {
		if opt != nil {
			opt.batchOption(&b)
		}
	}
	if b.parallel < 1 {
		b.parallel = runtime.NumCPU()
	}
	r := make([]Result, len(srcs))
	var egroup errgroup.Group
	egroup.SetLimit(b.parallel)
	for i, src := range srcs {
		i, src := i, src
		egroup.Go(func() error {
			v, err := EvalString(src, b.parse...)
			r[i] = Result{Src: src, Value: v, Err: err}
			return nil
		})
	}
	// Workers report failures through r, never through the group.
	_ = egroup.Wait()
	var errs *multierror.Error
	for i, res := range r {
		if res.Err != nil {
			errs = multierror.Append(errs, &LineError{Line: i + 1, Err: res.Err})
		}
	}
	return r, errs.ErrorOrNil()
}

// LineError is an error from one expression of a batch.
type LineError struct {
	// Line is the 1-based index of the expression in the batch.
	Line int
	// Err is the error from the expression.
	Err error
}

func (err *LineError) Error() string {
	return "line " + strconv.Itoa(err.Line) + ": " + err.Err.Error()
}

func (err *LineError) Unwrap() error {
	return err.Err
}
