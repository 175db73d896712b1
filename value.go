package solbind

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Bindings expose Solidity values as plain Go types: addresses are hex
// strings and every bytesN is a []byte. The ABI codec wants common.Address
// and [N]byte instead. The helpers below translate in both directions.

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// packArgs converts binding arguments for the given ABI inputs.
func packArgs(method string, inputs abi.Arguments, args []any) ([]any, error) {
	if len(args) != len(inputs) {
		return nil, &ArgumentError{
			Method: method,
			Index:  len(args),
			Err:    fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args)),
		}
	}
	converted := make([]any, len(args))
	for i, arg := range args {
		v, err := toABIValue(arg, inputs[i].Type)
		if err != nil {
			return nil, &ArgumentError{Method: method, Index: i, Err: err}
		}
		converted[i] = v
	}
	return converted, nil
}

// toABIValue converts a binding value into the Go value the ABI codec
// expects for typ.
func toABIValue(v any, typ abi.Type) (any, error) {
	want := typ.GetType()
	if v != nil && reflect.TypeOf(v) == want {
		return v, nil
	}
	switch typ.T {
	case abi.AddressTy:
		switch a := v.(type) {
		case string:
			if !common.IsHexAddress(a) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, a)
			}
			return common.HexToAddress(a), nil
		case common.Address:
			return a, nil
		}

	case abi.FixedBytesTy:
		if b, ok := v.([]byte); ok {
			if len(b) > typ.Size {
				return nil, &ConversionError{From: fmt.Sprintf("[]byte of length %d", len(b)), To: typ.String()}
			}
			arr := reflect.New(want).Elem()
			reflect.Copy(arr, reflect.ValueOf(b))
			return arr.Interface(), nil
		}

	case abi.IntTy, abi.UintTy:
		if want == bigIntType {
			return toBigInt(v, typ)
		}
		return toFixedInt(v, want, typ)

	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			break
		}
		var out reflect.Value
		if typ.T == abi.SliceTy {
			out = reflect.MakeSlice(want, rv.Len(), rv.Len())
		} else {
			if rv.Len() != typ.Size {
				return nil, &ConversionError{From: fmt.Sprintf("%d elements", rv.Len()), To: typ.String()}
			}
			out = reflect.New(want).Elem()
		}
		for i := 0; i < rv.Len(); i++ {
			elem, err := toABIValue(rv.Index(i).Interface(), *typ.Elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(elem))
		}
		return out.Interface(), nil
	}
	return v, nil
}

func toBigInt(v any, typ abi.Type) (any, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	}
	return nil, &ConversionError{From: fmt.Sprintf("%T", v), To: typ.String()}
}

// toFixedInt converts any Go integer to the exact sized integer type the
// codec wants, rejecting values that would overflow it.
func toFixedInt(v any, want reflect.Type, typ abi.Type) (any, error) {
	rv := reflect.ValueOf(v)
	fail := &ConversionError{From: fmt.Sprintf("%T", v), To: typ.String()}
	if !rv.IsValid() {
		return nil, fail
	}
	out := reflect.New(want).Elem()
	switch {
	case rv.CanInt():
		n := rv.Int()
		if want.Kind() >= reflect.Uint && want.Kind() <= reflect.Uint64 {
			if n < 0 || out.OverflowUint(uint64(n)) {
				return nil, fail
			}
			out.SetUint(uint64(n))
		} else {
			if out.OverflowInt(n) {
				return nil, fail
			}
			out.SetInt(n)
		}
	case rv.CanUint():
		n := rv.Uint()
		if want.Kind() >= reflect.Uint && want.Kind() <= reflect.Uint64 {
			if out.OverflowUint(n) {
				return nil, fail
			}
			out.SetUint(n)
		} else {
			if n > 1<<63-1 || out.OverflowInt(int64(n)) {
				return nil, fail
			}
			out.SetInt(int64(n))
		}
	default:
		return nil, fail
	}
	return out.Interface(), nil
}

// fromABIValue converts a decoded ABI value into a value of the binding type dst.
func fromABIValue(v any, dst reflect.Type) (reflect.Value, error) {
	src := reflect.ValueOf(v)
	if !src.IsValid() {
		return reflect.Zero(dst), nil
	}
	switch val := v.(type) {
	case common.Address:
		if dst.Kind() == reflect.String {
			return reflect.ValueOf(val.Hex()).Convert(dst), nil
		}
	case common.Hash:
		// Indexed dynamic event arguments only survive as their hash.
		switch {
		case dst.Kind() == reflect.String:
			return reflect.ValueOf(val.Hex()).Convert(dst), nil
		case isByteSlice(dst):
			return reflect.ValueOf(val.Bytes()).Convert(dst), nil
		}
	}
	if src.Type().AssignableTo(dst) {
		return src, nil
	}
	switch {
	case isByteSlice(dst) && src.Kind() == reflect.Array && src.Type().Elem().Kind() == reflect.Uint8:
		tmp := reflect.New(src.Type()).Elem()
		tmp.Set(src)
		b := make([]byte, src.Len())
		copy(b, tmp.Slice(0, src.Len()).Bytes())
		return reflect.ValueOf(b).Convert(dst), nil

	case dst.Kind() == reflect.Slice && (src.Kind() == reflect.Slice || src.Kind() == reflect.Array):
		out := reflect.MakeSlice(dst, src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			elem, err := fromABIValue(src.Index(i).Interface(), dst.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case src.Kind() == dst.Kind() && src.Type().ConvertibleTo(dst):
		return src.Convert(dst), nil
	}
	return reflect.Value{}, &ConversionError{From: src.Type().String(), To: dst.String()}
}

// assignOutputs stores decoded call results into out. A single output is
// assigned to *out; several outputs fill the fields of the struct *out in
// declaration order.
func assignOutputs(method string, results []any, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %q needs a non-nil pointer, got %T", ErrOutputMismatch, method, out)
	}
	dst := rv.Elem()
	if len(results) == 1 {
		val, err := fromABIValue(results[0], dst.Type())
		if err != nil {
			return fmt.Errorf("solbind: output of %q: %w", method, err)
		}
		dst.Set(val)
		return nil
	}
	if dst.Kind() != reflect.Struct || dst.NumField() != len(results) {
		return fmt.Errorf("%w: %q returns %d values, destination is %s", ErrOutputMismatch, method, len(results), dst.Type())
	}
	for i, result := range results {
		field := dst.Field(i)
		val, err := fromABIValue(result, field.Type())
		if err != nil {
			return fmt.Errorf("solbind: output %d of %q: %w", i, method, err)
		}
		field.Set(val)
	}
	return nil
}

func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}
