// Package bridge maps host calls onto the flatmat kernels.
//
// A host (the CLI, a WebAssembly page, a test) sends a Request naming an
// operation by its host-facing snake_case name together with plain buffers and
// shape parameters, and receives a Response carrying a buffer, a scalar or an
// index.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Common errors.
var (
	ErrUnknownOp = errors.New("bridge: unknown operation")
	ErrPanic     = errors.New("bridge: operation panicked")
)

// Kernel is the function set the bridge dispatches to.
type Kernel interface {
	AddMatrix(a, b []float64) ([]float64, error)
	SubtractMatrix(a, b []float64) ([]float64, error)
	ElementwiseMultiply(a, b []float64) ([]float64, error)
	AddScalar(a []float64, s float64) []float64
	SubtractScalar(a []float64, s float64) []float64
	MultiplyScalar(a []float64, s float64) []float64
	Multiply(a, b []float64, rows, m, n int) ([]float64, error)
	Transpose(a []float64, rows, columns int) ([]float64, error)
	Sum(a []float64) float64
	Argmax(a []float64) (int, bool)
}

type handler func(k Kernel, req Request) (Response, error)

func bufferResult(data []float64, err error) (Response, error) {
	if err != nil {
		return Response{}, err
	}
	return Response{Data: data}, nil
}

var handlers = map[string]handler{
	"add_matrix": func(k Kernel, req Request) (Response, error) {
		return bufferResult(k.AddMatrix(req.A, req.B))
	},
	"subtract_matrix": func(k Kernel, req Request) (Response, error) {
		return bufferResult(k.SubtractMatrix(req.A, req.B))
	},
	"elementwise_multiply": func(k Kernel, req Request) (Response, error) {
		return bufferResult(k.ElementwiseMultiply(req.A, req.B))
	},
	"add_scalar": func(k Kernel, req Request) (Response, error) {
		return Response{Data: k.AddScalar(req.A, float64(req.Scalar))}, nil
	},
	"subtract_scalar": func(k Kernel, req Request) (Response, error) {
		return Response{Data: k.SubtractScalar(req.A, float64(req.Scalar))}, nil
	},
	"multiply_scalar": func(k Kernel, req Request) (Response, error) {
		return Response{Data: k.MultiplyScalar(req.A, float64(req.Scalar))}, nil
	},
	"multiply": func(k Kernel, req Request) (Response, error) {
		return bufferResult(k.Multiply(req.A, req.B, req.Rows, req.M, req.N))
	},
	"transpose": func(k Kernel, req Request) (Response, error) {
		return bufferResult(k.Transpose(req.A, req.Rows, req.Columns))
	},
	"sum": func(k Kernel, req Request) (Response, error) {
		v := Float(k.Sum(req.A))
		return Response{Value: &v}, nil
	},
	"argmax": func(k Kernel, req Request) (Response, error) {
		idx, ok := k.Argmax(req.A)
		if !ok {
			return Response{}, nil
		}
		return Response{Index: &idx}, nil
	},
}

// aliases maps the original host names onto the unambiguous ones.
var aliases = map[string]string{
	"dot_matrix": "elementwise_multiply",
	"dot_scalar": "multiply_scalar",
}

// Ops returns every accepted operation name, aliases included, sorted.
func Ops() []string {
	names := make([]string, 0, len(handlers)+len(aliases))
	for name := range handlers {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatcher routes requests to a Kernel.
type Dispatcher struct {
	kernel Kernel
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger uses slog.Default().
func NewDispatcher(k Kernel, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{kernel: k, logger: logger}
}

// Dispatch runs one request. Kernel errors are returned unwrapped so callers
// can match them with errors.Is and errors.As. A panic inside the kernel is
// returned as an error wrapping ErrPanic.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (resp Response, err error) {
	if err := ctx.Err(); err != nil {
		return Response{Op: req.Op}, err
	}

	name := req.Op
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	h, ok := handlers[name]
	if !ok {
		return Response{Op: req.Op}, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}

	defer func() {
		if r := recover(); r != nil {
			resp, err = Response{Op: req.Op}, fmt.Errorf("%w: %s: %v", ErrPanic, req.Op, r)
			d.logger.ErrorContext(ctx, "dispatch panicked", "op", req.Op, "panic", r)
		}
	}()

	start := time.Now()
	resp, err = h(d.kernel, req)
	resp.Op = req.Op
	d.logger.DebugContext(ctx, "dispatch",
		"op", req.Op,
		"len_a", len(req.A),
		"len_b", len(req.B),
		"duration", time.Since(start),
		"error", err,
	)
	return resp, err
}

// DispatchAll runs requests in order and returns one response per request,
// with failures recorded in Response.Error. Once ctx is done the remaining
// requests are not run and carry the context error.
func (d *Dispatcher) DispatchAll(ctx context.Context, reqs []Request) []Response {
	resps := make([]Response, len(reqs))
	for i, req := range reqs {
		resp, err := d.Dispatch(ctx, req)
		if err != nil {
			resp.Error = err.Error()
		}
		resps[i] = resp
	}
	return resps
}
