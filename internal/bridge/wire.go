package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Float is a float64 whose JSON form also carries NaN and ±Inf. Non-finite
// values are encoded as the strings "NaN", "-NaN", "+Inf" and "-Inf"; "-NaN"
// is a NaN with the sign bit set. Finite values are plain JSON numbers, and no
// other quoted form is accepted.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	return appendFloat(nil, float64(f)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		v, ok := nonFinite[string(data)]
		if !ok {
			return fmt.Errorf("bridge: invalid float %s: want a number, \"NaN\", \"-NaN\", \"+Inf\" or \"-Inf\"", data)
		}
		*f = Float(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("bridge: invalid float %s: %w", data, err)
	}
	*f = Float(v)
	return nil
}

// nonFinite maps the quoted JSON tokens to their values.
var nonFinite = map[string]float64{
	`"NaN"`:  math.NaN(),
	`"-NaN"`: math.Copysign(math.NaN(), -1),
	`"+Inf"`: math.Inf(1),
	`"-Inf"`: math.Inf(-1),
}

// Buffer is a flat row-major float64 buffer with the same JSON encoding as Float.
type Buffer []float64

// MarshalJSON implements json.Marshaler.
func (b Buffer) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	out := make([]byte, 0, 2+len(b)*8)
	out = append(out, '[')
	for i, v := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = appendFloat(out, v)
	}
	return append(out, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Buffer) UnmarshalJSON(data []byte) error {
	var fs []Float
	if err := json.Unmarshal(data, &fs); err != nil {
		return err
	}
	if fs == nil {
		*b = nil
		return nil
	}
	buf := make(Buffer, len(fs))
	for i, f := range fs {
		buf[i] = float64(f)
	}
	*b = buf
	return nil
}

func appendFloat(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v) && math.Signbit(v):
		return append(dst, `"-NaN"`...)
	case math.IsNaN(v):
		return append(dst, `"NaN"`...)
	case math.IsInf(v, 1):
		return append(dst, `"+Inf"`...)
	case math.IsInf(v, -1):
		return append(dst, `"-Inf"`...)
	}
	return strconv.AppendFloat(dst, v, 'g', -1, 64)
}

// Request is one host call.
type Request struct {
	Op      string `json:"op"`
	A       Buffer `json:"a,omitempty"`
	B       Buffer `json:"b,omitempty"`
	Scalar  Float  `json:"scalar,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	Columns int    `json:"columns,omitempty"`
	M       int    `json:"m,omitempty"`
	N       int    `json:"n,omitempty"`
}

// Response is the result of one host call. Exactly one of Data, Value and
// Index is meaningful, depending on Op. An empty Data means an empty buffer
// result; a nil Index from argmax means the input was empty.
type Response struct {
	Op    string `json:"op"`
	Data  Buffer `json:"data,omitempty"`
	Value *Float `json:"value,omitempty"`
	Index *int   `json:"index,omitempty"`
	Error string `json:"error,omitempty"`
}

// DecodeRequests reads requests from r. The input is either a JSON array of
// requests or a stream of request objects separated by whitespace.
func DecodeRequests(r io.Reader) ([]Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bridge: read requests: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var reqs []Request
		if err := json.Unmarshal(data, &reqs); err != nil {
			return nil, fmt.Errorf("bridge: decode requests: %w", err)
		}
		return reqs, nil
	}

	var reqs []Request
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var req Request
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("bridge: decode request %d: %w", len(reqs), err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// EncodeResponses writes one JSON response per line to w.
func EncodeResponses(w io.Writer, resps []Response) error {
	enc := json.NewEncoder(w)
	for _, resp := range resps {
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("bridge: encode response: %w", err)
		}
	}
	return nil
}
