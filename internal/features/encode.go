package features

import "errors"

// Vector is an encoded record in schema order.
type Vector []int

// Float64 returns the vector as a model input row.
func (v Vector) Float64() []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Encode builds the feature vector for rec. It stops at the first column that fails and
// returns an *EncodeError naming that column; a partial vector is never returned.
func Encode(rec Record) (Vector, error) {
	out := make(Vector, len(schema))
	for i, col := range schema {
		raw := rec.Get(col.Name)

		var (
			n   int
			err error
		)
		if col.Kind == Categorical {
			n, err = NormalizeCategory(col.Name, raw)
		} else {
			n, err = CoerceNumeric(col.Name, raw)
		}
		if err != nil {
			return nil, &EncodeError{Column: col.Name, Value: raw.String(), Err: err}
		}
		out[i] = n
	}
	return out, nil
}

// IsEncodeError reports whether err came from record encoding, as opposed to the model or I/O.
func IsEncodeError(err error) bool {
	var ee *EncodeError
	return errors.As(err, &ee)
}
