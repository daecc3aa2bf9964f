package core

import (
	"math"
	"strconv"
)

// Kind is one of the five storage categories a cell can fall into.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

const (
	nullText = "NULL"
	blobText = "BLOB"
)

// Value is a single typed cell. Blob contents are not retained.
type Value struct {
	Kind Kind
	Int  int64
	Real float64
	Text string
}

func Null() Value { return Value{Kind: KindNull} }

func Integer(i int64) Value { return Value{Kind: KindInteger, Int: i} }

func Real(f float64) Value { return Value{Kind: KindReal, Real: f} }

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func Blob() Value { return Value{Kind: KindBlob} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value with the fixed text policy:
// NULL, base-10 integers, shortest non-exponent reals (inf and -inf for
// infinities), raw text and a BLOB placeholder.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		switch {
		case math.IsInf(v.Real, 1):
			return "inf"
		case math.IsInf(v.Real, -1):
			return "-inf"
		}
		return strconv.FormatFloat(v.Real, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBlob:
		return blobText
	default:
		return nullText
	}
}

// Classify sorts a value produced by a database/sql driver into one of the five kinds.
// Anything else is reported as a *DecodeError matching ErrValueDecode.
func Classify(val any) (Value, error) {
	switch v := val.(type) {
	case nil:
		return Null(), nil
	case int64:
		return Integer(v), nil
	case int:
		return Integer(int64(v)), nil
	case int8:
		return Integer(int64(v)), nil
	case int16:
		return Integer(int64(v)), nil
	case int32:
		return Integer(int64(v)), nil
	case uint8:
		return Integer(int64(v)), nil
	case uint16:
		return Integer(int64(v)), nil
	case uint32:
		return Integer(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Value{}, &DecodeError{Value: val, Reason: "overflows int64"}
		}
		return Integer(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, &DecodeError{Value: val, Reason: "overflows int64"}
		}
		return Integer(int64(v)), nil
	case float64:
		return Real(v), nil
	case float32:
		// keep the shortest float32 digits instead of the widened binary value
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		if err != nil {
			return Value{}, &DecodeError{Value: val, Reason: err.Error()}
		}
		return Real(f), nil
	case string:
		return Text(v), nil
	case []byte:
		return Blob(), nil
	default:
		return Value{}, &DecodeError{Value: val}
	}
}
