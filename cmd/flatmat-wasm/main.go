//go:build js && wasm

// Command flatmat-wasm exposes the flatmat kernels to JavaScript.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o flatmat.wasm ./cmd/flatmat-wasm
//
// After the module starts, globalThis.flatmat holds one function per kernel
// under its snake_case name, plus setup(states, actions). Buffers may be plain
// arrays or Float64Array and are returned as Float64Array. argmax returns
// undefined for an empty buffer. Failures are thrown as Error.
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"syscall/js"

	"github.com/born-ml/flatmat/internal/diag"
	"github.com/born-ml/flatmat/internal/envconfig"
	"github.com/born-ml/flatmat/internal/kernel"
	"github.com/born-ml/flatmat/internal/logutil"
)

// call is the Go side of one export. A non-nil error becomes a thrown Error.
type call func(args []js.Value) (any, error)

// throwing wraps a Go function so that a returned Error object is thrown.
var throwing = js.Global().Get("Function").New("fn", `
	return function(...args) {
		const r = fn(...args);
		if (r instanceof Error) throw r;
		return r;
	};`)

func export(obj js.Value, name string, fn call) {
	goFn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		v, err := fn(args)
		if err != nil {
			return js.Global().Get("Error").New(fmt.Sprintf("flatmat.%s: %v", name, err))
		}
		return v
	})
	obj.Set(name, throwing.Invoke(goFn))
}

func main() {
	logger := logutil.NewLogger(os.Stderr, envconfig.LogLevel())
	k := kernel.NewSequential()

	elementwise := func(op func(a, b []float64) ([]float64, error)) call {
		return func(args []js.Value) (any, error) {
			a, b, err := twoBuffers(args)
			if err != nil {
				return nil, err
			}
			r, err := op(a, b)
			if err != nil {
				return nil, err
			}
			return toJS(r), nil
		}
	}
	scalar := func(op func(a []float64, s float64) []float64) call {
		return func(args []js.Value) (any, error) {
			a, err := bufferArg(args, 0)
			if err != nil {
				return nil, err
			}
			s, err := numberArg(args, 1)
			if err != nil {
				return nil, err
			}
			return toJS(op(a, s)), nil
		}
	}

	obj := js.Global().Get("Object").New()
	export(obj, "add_matrix", elementwise(k.AddMatrix))
	export(obj, "subtract_matrix", elementwise(k.SubtractMatrix))
	export(obj, "dot_matrix", elementwise(k.ElementwiseMultiply))
	export(obj, "elementwise_multiply", elementwise(k.ElementwiseMultiply))
	export(obj, "add_scalar", scalar(k.AddScalar))
	export(obj, "subtract_scalar", scalar(k.SubtractScalar))
	export(obj, "dot_scalar", scalar(k.MultiplyScalar))
	export(obj, "multiply_scalar", scalar(k.MultiplyScalar))

	export(obj, "multiply", func(args []js.Value) (any, error) {
		a, b, err := twoBuffers(args)
		if err != nil {
			return nil, err
		}
		dims, err := intArgs(args, 2, 3)
		if err != nil {
			return nil, err
		}
		r, err := k.Multiply(a, b, dims[0], dims[1], dims[2])
		if err != nil {
			return nil, err
		}
		return toJS(r), nil
	})

	export(obj, "transpose", func(args []js.Value) (any, error) {
		a, err := bufferArg(args, 0)
		if err != nil {
			return nil, err
		}
		dims, err := intArgs(args, 1, 2)
		if err != nil {
			return nil, err
		}
		r, err := k.Transpose(a, dims[0], dims[1])
		if err != nil {
			return nil, err
		}
		return toJS(r), nil
	})

	export(obj, "sum", func(args []js.Value) (any, error) {
		a, err := bufferArg(args, 0)
		if err != nil {
			return nil, err
		}
		return k.Sum(a), nil
	})

	export(obj, "argmax", func(args []js.Value) (any, error) {
		a, err := bufferArg(args, 0)
		if err != nil {
			return nil, err
		}
		idx, ok := k.Argmax(a)
		if !ok {
			return js.Undefined(), nil
		}
		return idx, nil
	})

	export(obj, "setup", func(args []js.Value) (any, error) {
		counts, err := intArgs(args, 0, 2)
		if err != nil {
			return nil, err
		}
		r, err := diag.Setup(logger, counts[0], counts[1])
		if err != nil {
			return nil, err
		}
		return map[string]any{"states": r.States, "actions": r.Actions}, nil
	})

	js.Global().Set("flatmat", obj)
	logger.Debug("flatmat exports registered")

	// Exports must outlive main.
	select {}
}

func twoBuffers(args []js.Value) (a, b []float64, err error) {
	if a, err = bufferArg(args, 0); err != nil {
		return nil, nil, err
	}
	if b, err = bufferArg(args, 1); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// bufferArg copies argument i, a Float64Array or an array of numbers, into Go memory.
func bufferArg(args []js.Value, i int) ([]float64, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	v := args[i]

	if v.InstanceOf(js.Global().Get("Float64Array")) {
		n := v.Length()
		raw := make([]byte, n*8)
		view := js.Global().Get("Uint8Array").New(v.Get("buffer"), v.Get("byteOffset"), n*8)
		js.CopyBytesToGo(raw, view)
		out := make([]float64, n)
		for j := range out {
			out[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[j*8:]))
		}
		return out, nil
	}

	if !js.Global().Get("Array").Call("isArray", v).Bool() {
		return nil, fmt.Errorf("argument %d: expected an array or Float64Array, got %s", i, v.Type())
	}
	out := make([]float64, v.Length())
	for j := range out {
		e := v.Index(j)
		if e.Type() != js.TypeNumber {
			return nil, fmt.Errorf("argument %d: element %d is %s, not a number", i, j, e.Type())
		}
		out[j] = e.Float()
	}
	return out, nil
}

func numberArg(args []js.Value, i int) (float64, error) {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 0, fmt.Errorf("argument %d: expected a number", i)
	}
	return args[i].Float(), nil
}

// intArgs reads count non-negative integer arguments starting at first.
func intArgs(args []js.Value, first, count int) ([]int, error) {
	out := make([]int, count)
	for j := range out {
		f, err := numberArg(args, first+j)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
			return nil, fmt.Errorf("argument %d: expected a non-negative integer, got %v", first+j, f)
		}
		out[j] = int(f)
	}
	return out, nil
}

// toJS copies buf into a new Float64Array.
func toJS(buf []float64) js.Value {
	raw := make([]byte, len(buf)*8)
	for i, v := range buf {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}
	arr := js.Global().Get("Float64Array").New(len(buf))
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"))
	js.CopyBytesToJS(view, raw)
	return arr
}
