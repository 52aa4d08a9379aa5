package schemy

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a parsed syntax tree element, prior to evaluation.
// Nodes are immutable once the parser returns them.
type Node interface {
	NodeString() string
}

type NodeSymbol struct {
	Name string
}

type NodeList struct {
	Items []Node
}

type NodeInt struct {
	Val int32
}

type NodeFloat struct {
	Val float64
}

type NodeComplex struct {
	Real float64
	Imag float64
}

type NodeBool struct {
	Val bool
}

type NodeString struct {
	Val string
}

// NodeValue lets an already-computed runtime Value occupy a
// position that expects syntax. The trampoline and lambda
// parameter substitution both inject values this way.
type NodeValue struct {
	Val Value
}

func (n *NodeSymbol) NodeString() string { return n.Name }

func (n *NodeInt) NodeString() string { return strconv.FormatInt(int64(n.Val), 10) }

func (n *NodeFloat) NodeString() string { return strconv.FormatFloat(n.Val, 'g', -1, 64) }

func (n *NodeComplex) NodeString() string { return complexString(n.Real, n.Imag) }

func (n *NodeBool) NodeString() string {
	if n.Val {
		return "#t"
	}
	return "#f"
}

func (n *NodeString) NodeString() string {
	return `"` + strings.Replace(n.Val, `"`, `\"`, -1) + `"`
}

func (n *NodeList) NodeString() string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		parts[i] = item.NodeString()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (n *NodeValue) NodeString() string { return n.Val.ValueString() }

// Value is a runtime result produced by evaluating a Node.
// Values are cloned freely and share no mutable state.
type Value interface {
	ValueString() string
}

type ValInt struct {
	Val int32
}

type ValFloat struct {
	Val float64
}

type ValComplex struct {
	Real float64
	Imag float64
}

type ValBool struct {
	Val bool
}

// ValSymbol is an identifier that did not resolve in any scope.
// Lookup misses are not immediate errors; the symbol flows as
// data until a numeric or comparison primitive consumes it.
type ValSymbol struct {
	Name string
}

// ValLiteral is the result of quote applied to an atom.
type ValLiteral struct {
	Text string
}

type ValString struct {
	Val string
}

type ValList struct {
	Items []Value
}

// PrimFunc is the signature shared by all builtin operations. The
// argument Nodes arrive unevaluated; each primitive decides which
// of them to evaluate, which is how quote, if, and, or, lambda and
// define get special-form semantics without a separate table.
type PrimFunc func(ip *Interpreter, args []Node) (Value, error)

type ValFunction struct {
	Name string
	Fn   PrimFunc
}

type ValLambda struct {
	Params []Node
	Body   Node
}

// ValNode is a deferred-evaluation marker: "not finished, continue
// with this node". Only the trampoline in EvalNode consumes it.
type ValNode struct {
	Node Node
}

// ValVoid is the result of side-effecting forms like define and set!.
type ValVoid struct{}

func (v *ValInt) ValueString() string { return strconv.FormatInt(int64(v.Val), 10) }

func (v *ValFloat) ValueString() string { return strconv.FormatFloat(v.Val, 'g', -1, 64) }

func (v *ValComplex) ValueString() string { return complexString(v.Real, v.Imag) }

func (v *ValBool) ValueString() string {
	if v.Val {
		return "#t"
	}
	return "#f"
}

func (v *ValSymbol) ValueString() string { return v.Name }

func (v *ValLiteral) ValueString() string { return v.Text }

func (v *ValString) ValueString() string {
	return `"` + strings.Replace(v.Val, `"`, `\"`, -1) + `"`
}

func (v *ValList) ValueString() string {
	parts := make([]string, len(v.Items))
	for i, item := range v.Items {
		parts[i] = item.ValueString()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (v *ValFunction) ValueString() string { return v.Name }

func (v *ValLambda) ValueString() string {
	parts := make([]string, len(v.Params))
	for i, p := range v.Params {
		parts[i] = p.NodeString()
	}
	return fmt.Sprintf("(lambda (%s) (%s))", strings.Join(parts, " "), v.Body.NodeString())
}

func (v *ValNode) ValueString() string { return v.Node.NodeString() }

func (v *ValVoid) ValueString() string { return "()" }

func complexString(re, im float64) string {
	res := strconv.FormatFloat(re, 'g', -1, 64)
	ims := strconv.FormatFloat(im, 'g', -1, 64)
	if im >= 0 {
		return res + "+" + ims + "i"
	}
	return res + ims + "i"
}

// ValueToNode wraps an already-computed value so it can be spliced
// back into a syntax position.
func ValueToNode(v Value) Node {
	return &NodeValue{Val: v}
}
