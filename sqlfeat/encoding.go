package sqlfeat

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeVector encodes a slice of float32 values into a BLOB representation
// suitable for passing vector feature values to the registered SQL
// functions. The encoding is a little-endian sequence of IEEE 754 float32
// values without a length prefix; the length is derived from the BLOB size
// on decode.
func EncodeVector(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// DecodeVector decodes a BLOB produced by EncodeVector back into a slice of
// float32 values.
func DecodeVector(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("sqlfeat: invalid vector blob length %d (not multiple of 4)", len(b))
	}
	n := len(b) / 4
	vec := make([]float32, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
