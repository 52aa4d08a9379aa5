package schemy

import (
	"math"
)

// CoreFunctions returns the fixed table of builtin operations bound
// into every root environment. Primitives receive unevaluated nodes,
// so quote, if, and, or, lambda and define live in the same table as
// the strict operations.
func CoreFunctions() map[string]PrimFunc {
	return map[string]PrimFunc{
		"begin":  BeginFunction,
		"+":      AddFunction,
		"-":      SubFunction,
		"*":      MulFunction,
		"/":      DivFunction,
		"pow":    PowFunction,
		"expt":   PowFunction,
		"define": DefineFunction,
		"set!":   DefineFunction,
		">":      CompareFunction(">"),
		">=":     CompareFunction(">="),
		"<":      CompareFunction("<"),
		"<=":     CompareFunction("<="),
		"=":      EqualFunction("="),
		"equal?": EqualFunction("equal?"),
		"not":    NotFunction,
		"and":    AndFunction,
		"or":     OrFunction,
		"list":   ListFunction,
		"car":    CarFunction,
		"cdr":    CdrFunction,
		"cons":   ConsFunction,
		"append": AppendFunction,
		"empty?": EmptyFunction,
		"null?":  EmptyFunction,
		"length": LengthFunction,
		"if":     IfFunction,
		"map":    MapFunction,
		"quote":  QuoteFunction,
		"lambda": LambdaFunction,
	}
}

func MathFunctions() map[string]PrimFunc {
	return map[string]PrimFunc{
		"sin":   UnaryMathFunction("sin", math.Sin),
		"cos":   UnaryMathFunction("cos", math.Cos),
		"tan":   UnaryMathFunction("tan", math.Tan),
		"asin":  UnaryMathFunction("asin", math.Asin),
		"acos":  UnaryMathFunction("acos", math.Acos),
		"atan":  UnaryMathFunction("atan", math.Atan),
		"exp":   UnaryMathFunction("exp", math.Exp),
		"log":   UnaryMathFunction("log", math.Log),
		"log10": UnaryMathFunction("log10", math.Log10),
		"sqrt":  UnaryMathFunction("sqrt", math.Sqrt),
	}
}

func BuiltinConstants() map[string]Value {
	return map[string]Value{
		"pi": &ValFloat{Val: math.Pi},
		"e":  &ValFloat{Val: math.E},
	}
}

func MergeFuncMap(funcs ...map[string]PrimFunc) map[string]PrimFunc {
	n := make(map[string]PrimFunc)
	for _, f := range funcs {
		for name, fn := range f {
			n[name] = fn
		}
	}
	return n
}

func AllBuiltinFunctions() map[string]PrimFunc {
	return MergeFuncMap(
		CoreFunctions(),
		MathFunctions(),
		EncodingFunctions(),
	)
}

// settle runs the trampoline on a possibly-deferred result. Needed
// by primitives like map that consume lambda results directly.
func (ip *Interpreter) settle(v Value) (Value, error) {
	if cont, isCont := v.(*ValNode); isCont {
		return ip.EvalNode(cont.Node)
	}
	return v, nil
}

func BeginFunction(ip *Interpreter, args []Node) (Value, error) {
	inner := NewInterpreterWithEnv(NewEnv(ip.Env))
	var res Value = &ValVoid{}
	var err error
	for _, n := range args {
		res, err = inner.EvalNode(n)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// AddFunction is fully variadic: (+ a b c ...) folds by recursing on
// the remaining arguments. Bools coerce to 1/0 before arithmetic.
func AddFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) == 0 {
		return &ValInt{Val: 0}, nil
	}
	x, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	y, err := AddFunction(ip, args[1:])
	if err != nil {
		return nil, err
	}
	return NumericDo(Add, coerceBool(x), coerceBool(y))
}

func MulFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) == 0 {
		return &ValInt{Val: 1}, nil
	}
	x, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	y, err := MulFunction(ip, args[1:])
	if err != nil {
		return nil, err
	}
	return NumericDo(Mult, coerceBool(x), coerceBool(y))
}

// SubFunction takes 1, 2 or N arguments. One argument negates; more
// than two fold left to right.
func SubFunction(ip *Interpreter, args []Node) (Value, error) {
	return foldLeftNumeric(ip, Sub, &ValInt{Val: 0}, args)
}

// DivFunction takes 1, 2 or N arguments. One argument gives the
// reciprocal; more than two fold left to right.
func DivFunction(ip *Interpreter, args []Node) (Value, error) {
	return foldLeftNumeric(ip, Div, &ValInt{Val: 1}, args)
}

func foldLeftNumeric(ip *Interpreter, op NumericOp, unit Value, args []Node) (Value, error) {
	if len(args) == 0 {
		return nil, NewEvalError("'%s' takes at least one argument", opName(op))
	}
	acc, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	acc = coerceBool(acc)
	if len(args) == 1 {
		return NumericDo(op, unit, acc)
	}
	for _, n := range args[1:] {
		y, err := ip.EvalNode(n)
		if err != nil {
			return nil, err
		}
		acc, err = NumericDo(op, acc, coerceBool(y))
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func PowFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 2 {
		return nil, NewEvalError("'pow' takes exactly two arguments")
	}
	x, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	y, err := ip.EvalNode(args[1])
	if err != nil {
		return nil, err
	}
	return NumericDo(Pow, x, y)
}

func CompareFunction(name string) PrimFunc {
	return func(ip *Interpreter, args []Node) (Value, error) {
		if len(args) != 2 {
			return nil, NewEvalError("'%s' takes exactly two arguments", name)
		}
		x, err := ip.EvalNode(args[0])
		if err != nil {
			return nil, err
		}
		y, err := ip.EvalNode(args[1])
		if err != nil {
			return nil, err
		}
		res, err := compareNumeric(name, x, y)
		if err != nil {
			return nil, err
		}
		cond := false
		switch name {
		case "<":
			cond = res < 0
		case ">":
			cond = res > 0
		case "<=":
			cond = res <= 0
		case ">=":
			cond = res >= 0
		}
		return &ValBool{Val: cond}, nil
	}
}

func EqualFunction(name string) PrimFunc {
	return func(ip *Interpreter, args []Node) (Value, error) {
		if len(args) != 2 {
			return nil, NewEvalError("'%s' takes exactly two arguments", name)
		}
		x, err := ip.EvalNode(args[0])
		if err != nil {
			return nil, err
		}
		y, err := ip.EvalNode(args[1])
		if err != nil {
			return nil, err
		}
		eq, err := valuesEqual(name, x, y)
		if err != nil {
			return nil, err
		}
		return &ValBool{Val: eq}, nil
	}
}

func NotFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'not' takes exactly one argument")
	}
	x, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	b, ok := x.(*ValBool)
	if !ok {
		return nil, NewEvalError("invalid type for 'not'")
	}
	return &ValBool{Val: !b.Val}, nil
}

// AndFunction evaluates left to right and stops at the first #f;
// the operands past the decisive one are never evaluated.
func AndFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) == 0 {
		return &ValBool{Val: true}, nil
	}
	last := len(args) - 1
	for i, n := range args {
		v, err := ip.EvalNode(n)
		if err != nil {
			return nil, err
		}
		if i == last {
			return v, nil
		}
		b, ok := v.(*ValBool)
		if !ok {
			return nil, NewEvalError("invalid type for 'and'")
		}
		if !b.Val {
			return v, nil
		}
	}
	return &ValBool{Val: true}, nil
}

// OrFunction stops at the first #t.
func OrFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) == 0 {
		return &ValBool{Val: false}, nil
	}
	last := len(args) - 1
	for i, n := range args {
		v, err := ip.EvalNode(n)
		if err != nil {
			return nil, err
		}
		if i == last {
			return v, nil
		}
		b, ok := v.(*ValBool)
		if !ok {
			return nil, NewEvalError("invalid type for 'or'")
		}
		if b.Val {
			return v, nil
		}
	}
	return &ValBool{Val: false}, nil
}

func ListFunction(ip *Interpreter, args []Node) (Value, error) {
	vals := make([]Value, 0, len(args))
	for _, n := range args {
		v, err := ip.EvalNode(n)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return &ValList{Items: vals}, nil
}

func evalListArg(ip *Interpreter, name string, arg Node) (*ValList, error) {
	x, err := ip.EvalNode(arg)
	if err != nil {
		return nil, err
	}
	list, ok := x.(*ValList)
	if !ok {
		return nil, NewEvalError("invalid type for '%s'", name)
	}
	return list, nil
}

func CarFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'car' takes exactly one argument")
	}
	list, err := evalListArg(ip, "car", args[0])
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, NewEvalError("'car' on empty list")
	}
	return list.Items[0], nil
}

func CdrFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'cdr' takes exactly one argument")
	}
	list, err := evalListArg(ip, "cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, NewEvalError("'cdr' on empty list")
	}
	rest := make([]Value, len(list.Items)-1)
	copy(rest, list.Items[1:])
	return &ValList{Items: rest}, nil
}

func ConsFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 2 {
		return nil, NewEvalError("'cons' takes exactly two arguments")
	}
	x, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	list, err := evalListArg(ip, "cons", args[1])
	if err != nil {
		return nil, err
	}
	vals := make([]Value, 0, len(list.Items)+1)
	vals = append(vals, x)
	vals = append(vals, list.Items...)
	return &ValList{Items: vals}, nil
}

func AppendFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 2 {
		return nil, NewEvalError("'append' takes exactly two arguments")
	}
	xs, err := evalListArg(ip, "append", args[0])
	if err != nil {
		return nil, err
	}
	ys, err := evalListArg(ip, "append", args[1])
	if err != nil {
		return nil, err
	}
	vals := make([]Value, 0, len(xs.Items)+len(ys.Items))
	vals = append(vals, xs.Items...)
	vals = append(vals, ys.Items...)
	return &ValList{Items: vals}, nil
}

func EmptyFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'empty?' takes exactly one argument")
	}
	list, err := evalListArg(ip, "empty?", args[0])
	if err != nil {
		return nil, err
	}
	return &ValBool{Val: len(list.Items) == 0}, nil
}

func LengthFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'length' takes exactly one argument")
	}
	list, err := evalListArg(ip, "length", args[0])
	if err != nil {
		return nil, err
	}
	return &ValInt{Val: int32(len(list.Items))}, nil
}

// IfFunction evaluates only its test. The chosen branch comes back
// as a deferred node so the trampoline evaluates it in tail
// position; a recursive call there iterates instead of stacking.
func IfFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 3 {
		return nil, NewEvalError("'if' takes exactly three arguments")
	}
	test, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	b, ok := test.(*ValBool)
	if !ok {
		return nil, NewEvalError("'if' requires a boolean test")
	}
	if b.Val {
		return &ValNode{Node: args[1]}, nil
	}
	return &ValNode{Node: args[2]}, nil
}

// MapFunction applies a builtin or lambda to each element of a
// list. The first per-element error propagates.
func MapFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 2 {
		return nil, NewEvalError("'map' takes exactly two arguments")
	}
	fn, err := ip.EvalNode(args[0])
	if err != nil {
		return nil, err
	}
	list, err := evalListArg(ip, "map", args[1])
	if err != nil {
		return nil, err
	}

	res := make([]Value, 0, len(list.Items))
	switch f := fn.(type) {
	case *ValFunction:
		for _, item := range list.Items {
			v, err := f.Fn(ip, []Node{ValueToNode(item)})
			if err != nil {
				return nil, err
			}
			v, err = ip.settle(v)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
	case *ValLambda:
		for _, item := range list.Items {
			v, err := ip.EvalLambda(f, []Node{args[0], ValueToNode(item)})
			if err != nil {
				return nil, err
			}
			v, err = ip.settle(v)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
	default:
		return nil, NewEvalError("invalid type for 'map'")
	}
	return &ValList{Items: res}, nil
}

// DefineFunction backs both define and set!: evaluate the right
// hand side, bind in the innermost scope. A parenthesized target
// (name params...) is sugar for binding name to a lambda, with an
// implicit begin around multiple body forms.
func DefineFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) < 2 {
		return nil, NewEvalError("'define' takes a target and a value")
	}
	switch target := args[0].(type) {
	case *NodeList:
		if len(target.Items) == 0 {
			return nil, NewEvalError("can't define %s", args[0].NodeString())
		}
		params := target.Items[1:]
		var body Node
		if len(args) > 2 {
			items := make([]Node, 0, len(args))
			items = append(items, &NodeSymbol{Name: "begin"})
			items = append(items, args[1:]...)
			body = &NodeList{Items: items}
		} else {
			body = args[1]
		}
		lam := ValueToNode(&ValLambda{Params: params, Body: body})
		return DefineFunction(ip, []Node{target.Items[0], lam})
	case *NodeSymbol:
		v, err := ip.EvalNode(args[1])
		if err != nil {
			return nil, err
		}
		ip.Env.Set(target.Name, v)
		return &ValVoid{}, nil
	}
	return nil, NewEvalError("can't define %s", args[0].NodeString())
}

func LambdaFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 2 {
		return nil, NewEvalError("'lambda' takes exactly two arguments")
	}
	params, ok := args[0].(*NodeList)
	if !ok {
		return nil, NewEvalError("lambda should provide a param list")
	}
	return &ValLambda{Params: params.Items, Body: args[1]}, nil
}

// QuoteFunction converts syntax to data without evaluating any of
// it: atoms become literals holding their textual form, lists stay
// lists.
func QuoteFunction(ip *Interpreter, args []Node) (Value, error) {
	if len(args) != 1 {
		return nil, NewEvalError("'quote' takes exactly one argument")
	}
	return quoteNode(args[0]), nil
}

func quoteNode(node Node) Value {
	switch n := node.(type) {
	case *NodeSymbol, *NodeInt, *NodeFloat, *NodeComplex, *NodeBool:
		return &ValLiteral{Text: node.NodeString()}
	case *NodeString:
		return &ValString{Val: n.Val}
	case *NodeList:
		vals := make([]Value, len(n.Items))
		for i, item := range n.Items {
			vals[i] = quoteNode(item)
		}
		return &ValList{Items: vals}
	case *NodeValue:
		return n.Val
	}
	return &ValVoid{}
}

func UnaryMathFunction(name string, fn func(float64) float64) PrimFunc {
	return func(ip *Interpreter, args []Node) (Value, error) {
		if len(args) != 1 {
			return nil, NewEvalError("'%s' takes exactly one argument", name)
		}
		x, err := ip.EvalNode(args[0])
		if err != nil {
			return nil, err
		}
		f, ok := asFloat(x)
		if !ok {
			return nil, NewEvalError("invalid type for '%s'", name)
		}
		return &ValFloat{Val: fn(f)}, nil
	}
}
