package schemy

import (
	"fmt"
)

// EvalError reports runtime failures: arity mismatches, type
// mismatches, unknown functions or symbols, division by zero.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return "EvalError: " + e.Message
}

func NewEvalError(format string, args ...interface{}) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}

// Interpreter walks a Node tree against an environment chain.
type Interpreter struct {
	Env *Env
}

// NewInterpreter returns an interpreter whose root environment is
// pre-populated with the primitive table. The primitive bindings
// are never mutated after construction.
func NewInterpreter() *Interpreter {
	env := NewEnv(nil)
	for name, fn := range AllBuiltinFunctions() {
		env.Set(name, &ValFunction{Name: name, Fn: fn})
	}
	for name, v := range BuiltinConstants() {
		env.Set(name, v)
	}
	return &Interpreter{Env: env}
}

func NewInterpreterWithEnv(env *Env) *Interpreter {
	return &Interpreter{Env: env}
}

// Eval evaluates one parsed tree to a settled Value.
func (ip *Interpreter) Eval(tree Node) (Value, error) {
	return ip.EvalNode(tree)
}

// EvalString tokenizes, parses and evaluates a single top-level form.
func (ip *Interpreter) EvalString(src string) (Value, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	tree, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	return ip.EvalNode(tree)
}

// EvalNode is the trampoline: it keeps taking single reduction steps
// until the result settles on something other than a deferred node.
// This loop is the only mechanism for unbounded tail recursion; a
// primitive that returns a ValNode (if does this for its chosen
// branch) iterates here instead of growing the call stack.
func (ip *Interpreter) EvalNode(node Node) (Value, error) {
	for {
		res, err := ip.EvalNodeOnce(node)
		if err != nil {
			return nil, err
		}
		if cont, isCont := res.(*ValNode); isCont {
			if Verbose {
				VPrintf("trampoline bounce: %s\n", cont.Node.NodeString())
			}
			node = cont.Node
			continue
		}
		return res, nil
	}
}

// EvalNodeOnce performs exactly one reduction step. It may return a
// ValNode continuation meaning "not finished, continue with this
// node"; callers that need a settled value go through EvalNode.
func (ip *Interpreter) EvalNodeOnce(node Node) (Value, error) {
	if Verbose {
		VPrintf("eval: %s\n", node.NodeString())
	}
	switch n := node.(type) {
	case *NodeValue:
		return n.Val, nil
	case *NodeInt:
		return &ValInt{Val: n.Val}, nil
	case *NodeFloat:
		return &ValFloat{Val: n.Val}, nil
	case *NodeComplex:
		return &ValComplex{Real: n.Real, Imag: n.Imag}, nil
	case *NodeBool:
		return &ValBool{Val: n.Val}, nil
	case *NodeString:
		return &ValString{Val: n.Val}, nil
	case *NodeSymbol:
		if v, ok := ip.Env.Get(n.Name); ok {
			return v, nil
		}
		// not an error yet: the symbol may flow into quote or
		// list as data, or trip a primitive later.
		return &ValSymbol{Name: n.Name}, nil
	case *NodeList:
		return ip.evalList(n)
	}
	return nil, NewEvalError("cannot evaluate node %s", node.NodeString())
}

func (ip *Interpreter) evalList(list *NodeList) (Value, error) {
	if len(list.Items) == 0 {
		return &ValList{}, nil
	}

	op, err := ip.EvalNode(list.Items[0])
	if err != nil {
		return nil, err
	}
	if Verbose {
		VPrintf("dispatch: %s on %d operands\n", op.ValueString(), len(list.Items)-1)
	}

	switch fn := op.(type) {
	case *ValSymbol:
		return nil, NewEvalError("unknown function %s", fn.Name)
	case *ValFunction:
		// primitives receive their operand nodes unevaluated
		return fn.Fn(ip, list.Items[1:])
	case *ValLambda:
		return ip.EvalLambda(fn, list.Items)
	case *ValNode:
		// the operator itself needs further reduction, as in
		// ((if c f g) x): substitute and retry the whole list
		items := make([]Node, len(list.Items))
		copy(items, list.Items)
		items[0] = fn.Node
		return ip.EvalNode(&NodeList{Items: items})
	}
	return nil, NewEvalError("invalid function call")
}

// EvalLambda applies a lambda to a full call-site node list
// (operator plus argument nodes). Arity is exact. Arguments are
// evaluated in the caller's environment, bound in a fresh child
// scope, and additionally substituted structurally into the body so
// that recursive and higher-order lambdas work without environment
// capture. The body takes one reduction step here; any continuation
// unwinds on the caller's trampoline, keeping tail calls flat.
func (ip *Interpreter) EvalLambda(lam *ValLambda, nodes []Node) (Value, error) {
	params := lam.Params
	if len(nodes)-1 != len(params) {
		return nil, NewEvalError("%s expects %d params, got %d",
			nodes[0].NodeString(), len(params), len(nodes)-1)
	}

	env := NewEnv(ip.Env)
	vals := make([]Value, len(params))
	for i, p := range params {
		sym, isSym := p.(*NodeSymbol)
		if !isSym {
			return nil, NewEvalError("invalid parameter %s", p.NodeString())
		}
		v, err := ip.EvalNode(nodes[i+1])
		if err != nil {
			return nil, err
		}
		if Verbose {
			VPrintf("bind %s = %s\n", sym.Name, v.ValueString())
		}
		env.Set(sym.Name, v)
		vals[i] = v
	}
	if Verbose {
		Dump(env.Map)
	}

	inner := NewInterpreterWithEnv(env)
	body := inlineParams(lam.Body, params, vals)
	return inner.EvalNodeOnce(body)
}

// inlineParams rewrites every free occurrence of a parameter symbol
// inside the body with its already-evaluated value, recursively
// through nested lists, preserving structure at arbitrary depth.
func inlineParams(node Node, params []Node, vals []Value) Node {
	switch n := node.(type) {
	case *NodeList:
		items := make([]Node, len(n.Items))
		for i, item := range n.Items {
			items[i] = inlineParams(item, params, vals)
		}
		return &NodeList{Items: items}
	case *NodeSymbol:
		for i, p := range params {
			if sym, isSym := p.(*NodeSymbol); isSym && sym.Name == n.Name {
				return ValueToNode(vals[i])
			}
		}
		return node
	}
	return node
}
