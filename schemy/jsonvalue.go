package schemy

import (
	"math"
	"sort"

	"github.com/ugorji/go/codec"
)

// translation to/from the JSON and msgpack object models, in the
// spirit of scheme values being plain data. Lambdas, builtins and
// deferred nodes have no serialized form.

type codecHelper struct {
	mh codec.MsgpackHandle
	jh codec.JsonHandle
}

var valueCodec codecHelper

func init() {
	valueCodec.mh.RawToString = true
	valueCodec.jh.SignedInteger = true
}

func EncodingFunctions() map[string]PrimFunc {
	return map[string]PrimFunc{
		"json":      JsonFunction,
		"unjson":    UnjsonFunction,
		"msgpack":   MsgpackFunction,
		"unmsgpack": UnmsgpackFunction,
		"blake2b":   Blake2bFunction,
	}
}

func valueToGo(v Value) (interface{}, error) {
	switch x := v.(type) {
	case *ValInt:
		return int64(x.Val), nil
	case *ValFloat:
		return x.Val, nil
	case *ValBool:
		return x.Val, nil
	case *ValString:
		return x.Val, nil
	case *ValLiteral:
		return x.Text, nil
	case *ValSymbol:
		return x.Name, nil
	case *ValComplex:
		return x.ValueString(), nil
	case *ValList:
		arr := make([]interface{}, len(x.Items))
		for i, item := range x.Items {
			g, err := valueToGo(item)
			if err != nil {
				return nil, err
			}
			arr[i] = g
		}
		return arr, nil
	case *ValVoid:
		return nil, nil
	}
	return nil, NewEvalError("value %s has no serialized form", v.ValueString())
}

func goToValue(g interface{}) (Value, error) {
	switch x := g.(type) {
	case nil:
		return &ValVoid{}, nil
	case bool:
		return &ValBool{Val: x}, nil
	case string:
		return &ValString{Val: x}, nil
	case int64:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return nil, NewEvalError("integer %d out of range", x)
		}
		return &ValInt{Val: int32(x)}, nil
	case uint64:
		if x > math.MaxInt32 {
			return nil, NewEvalError("integer %d out of range", x)
		}
		return &ValInt{Val: int32(x)}, nil
	case float64:
		return &ValFloat{Val: x}, nil
	case []byte:
		return &ValString{Val: string(x)}, nil
	case []interface{}:
		vals := make([]Value, len(x))
		for i, item := range x {
			v, err := goToValue(item)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return &ValList{Items: vals}, nil
	case map[string]interface{}:
		// maps flatten into a list of (key value) pairs, in sorted
		// key order so decoding is deterministic
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]Value, 0, len(x))
		for _, k := range keys {
			item, err := goToValue(x[k])
			if err != nil {
				return nil, err
			}
			vals = append(vals, &ValList{Items: []Value{
				&ValString{Val: k}, item,
			}})
		}
		return &ValList{Items: vals}, nil
	}
	return &ValVoid{}, nil
}

func encodeValue(ip *Interpreter, name string, arg Node, h codec.Handle) (Value, error) {
	v, err := ip.EvalNode(arg)
	if err != nil {
		return nil, err
	}
	g, err := valueToGo(v)
	if err != nil {
		return nil, err
	}
	var out []byte
	enc := codec.NewEncoderBytes(&out, h)
	if err := enc.Encode(g); err != nil {
		return nil, NewEvalError("'%s' encoding failed: %v", name, err)
	}
	return &ValString{Val: string(out)}, nil
}

func decodeValue(ip *Interpreter, name string, arg Node, h codec.Handle) (Value, error) {
	v, err := ip.EvalNode(arg)
	if err != nil {
		return nil, err
	}
	str, ok := v.(*ValString)
	if !ok {
		return nil, NewEvalError("invalid type for '%s'", name)
	}
	var g interface{}
	dec := codec.NewDecoderBytes([]byte(str.Val), h)
	if err := dec.Decode(&g); err != nil {
		return nil, NewEvalError("'%s' decoding failed: %v", name, err)
	}
	return goToValue(g)
}

func JsonFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'json' takes exactly one argument")
	}
	return encodeValue(ip, "json", args[0], &valueCodec.jh)
}

func UnjsonFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'unjson' takes exactly one argument")
	}
	return decodeValue(ip, "unjson", args[0], &valueCodec.jh)
}

func MsgpackFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'msgpack' takes exactly one argument")
	}
	return encodeValue(ip, "msgpack", args[0], &valueCodec.mh)
}

func UnmsgpackFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'unmsgpack' takes exactly one argument")
	}
	return decodeValue(ip, "unmsgpack", args[0], &valueCodec.mh)
}
