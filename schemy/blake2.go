package schemy

import (
	"encoding/binary"
	"fmt"

	"github.com/glycerine/blake2b"
)

// Blake2bUint64 returns an 8 byte BLAKE2b cryptographic hash of raw.
func Blake2bUint64(raw []byte) (uint64, error) {
	cfg := &blake2b.Config{Size: 8}
	h, err := blake2b.New(cfg)
	if err != nil {
		return 0, err
	}
	h.Write(raw)
	by := h.Sum(nil)
	return binary.LittleEndian.Uint64(by[:8]), nil
}

// Blake2bFunction hashes a string, or any other value's rendering,
// to a 16 hex digit literal.
func Blake2bFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'blake2b' takes exactly one argument")
	}
	v, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	var raw []byte
	if str, ok := v.(*ValString); ok {
		raw = []byte(str.Val)
	} else {
		raw = []byte(v.ValueString())
	}
	sum, err := Blake2bUint64(raw)
	if err != nil {
		return nil, NewEvalError("'blake2b' failed: %v", err)
	}
	return &ValLiteral{Text: fmt.Sprintf("%016x", sum)}, nil
}
