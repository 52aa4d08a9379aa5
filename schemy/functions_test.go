package schemy

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test040NumericPromotion(t *testing.T) {

	cv.Convey(`arithmetic promotes through the numeric tower and coerces bools to 1/0`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(+ 1 2.0)"), cv.ShouldResemble, &ValFloat{Val: 3.0})
		cv.So(mustRun(ip, "(+ #t 1)"), cv.ShouldResemble, &ValInt{Val: 2})
		cv.So(mustRun(ip, "(* 2 3 4)"), cv.ShouldResemble, &ValInt{Val: 24})
		cv.So(mustRun(ip, "(+ 1 2 3 4 5)"), cv.ShouldResemble, &ValInt{Val: 15})
		cv.So(mustRun(ip, "(+)"), cv.ShouldResemble, &ValInt{Val: 0})
		cv.So(mustRun(ip, "(*)"), cv.ShouldResemble, &ValInt{Val: 1})
		cv.So(mustRun(ip, "(- 10 1 2)"), cv.ShouldResemble, &ValInt{Val: 7})
		cv.So(mustRun(ip, "(- 5)"), cv.ShouldResemble, &ValInt{Val: -5})
		cv.So(mustRun(ip, "(/ 7 2)"), cv.ShouldResemble, &ValInt{Val: 3})
		cv.So(mustRun(ip, "(/ -7 2)"), cv.ShouldResemble, &ValInt{Val: -3})
		cv.So(mustRun(ip, "(/ 100 5 2)"), cv.ShouldResemble, &ValInt{Val: 10})
		cv.So(mustRun(ip, "(+ 1+2i 1)"), cv.ShouldResemble, &ValComplex{Real: 2, Imag: 2})
		cv.So(mustRun(ip, "(* 1+2i 2.0)"), cv.ShouldResemble, &ValComplex{Real: 2, Imag: 4})
	})

	cv.Convey(`division by exact zero is an error, not Inf`, t, func() {
		ip := NewInterpreter()
		_, err := run(ip, "(/ 1 0)")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, "division by zero")
		_, err = run(ip, "(/ 1.0 0.0)")
		cv.So(err, cv.ShouldNotBeNil)
	})

	cv.Convey(`an unresolved symbol operand trips arithmetic, even though it flows through list`, t, func() {
		ip := NewInterpreter()
		_, err := run(ip, "(+ 1 mystery)")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, "unknown symbol mystery")
	})

	cv.Convey(`pow gives a float for int arguments`, t, func() {
		ip := NewInterpreter()
		v := mustRun(ip, "(pow 2 16)")
		f, ok := v.(*ValFloat)
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(f.Val, cv.ShouldAlmostEqual, 65536.0, 0.001)
		cv.So(mustRun(ip, "(expt 2 3)").(*ValFloat).Val, cv.ShouldAlmostEqual, 8.0, 0.001)
	})
}

func Test041Comparisons(t *testing.T) {

	cv.Convey(`comparisons are binary with int to float promotion`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(< 1 2)"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(> 1 2.5)"), cv.ShouldResemble, &ValBool{Val: false})
		cv.So(mustRun(ip, "(<= 2 2.0)"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(= 2 2.0)"), cv.ShouldResemble, &ValBool{Val: true})
	})

	cv.Convey(`equal? also compares literals, strings and whole lists structurally`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(equal? (quote a) (quote a))"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(equal? (quote a) (quote b))"), cv.ShouldResemble, &ValBool{Val: false})
		cv.So(mustRun(ip, `(equal? "x" "x")`), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(equal? (list 1 2) (list 1 2))"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(equal? (list 1 2) (list 1 3))"), cv.ShouldResemble, &ValBool{Val: false})
	})

	cv.Convey(`a complex equals a real only when its imaginary part is zero`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(= 2+0i 2)"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(= 2+1i 2)"), cv.ShouldResemble, &ValBool{Val: false})
	})
}

func Test042Logic(t *testing.T) {

	cv.Convey(`and short-circuits: the second operand is never evaluated after a #f`, t, func() {
		ip := NewInterpreter()
		// (car (quote ())) would be an error if evaluated
		cv.So(mustRun(ip, "(and #f (car (quote ())))"), cv.ShouldResemble, &ValBool{Val: false})
		cv.So(mustRun(ip, "(or #t (car (quote ())))"), cv.ShouldResemble, &ValBool{Val: true})
	})

	cv.Convey(`and/or return their last operand when no earlier one decides`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(and #t #t)"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(or #f #f)"), cv.ShouldResemble, &ValBool{Val: false})
		cv.So(mustRun(ip, "(and)"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(or)"), cv.ShouldResemble, &ValBool{Val: false})
	})

	cv.Convey(`not requires a bool`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(not #f)"), cv.ShouldResemble, &ValBool{Val: true})
		_, err := run(ip, "(not 1)")
		cv.So(err, cv.ShouldNotBeNil)
	})
}

func Test043ListOperations(t *testing.T) {

	cv.Convey(`list, car, cdr, cons, append, length and empty? work over value lists`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(list 1 2 3)").ValueString(), cv.ShouldEqual, "(1 2 3)")
		cv.So(mustRun(ip, "(car (list 1 2 3))"), cv.ShouldResemble, &ValInt{Val: 1})
		cv.So(mustRun(ip, "(cdr (list 1 2 3))").ValueString(), cv.ShouldEqual, "(2 3)")
		cv.So(mustRun(ip, "(cons 0 (list 1 2))").ValueString(), cv.ShouldEqual, "(0 1 2)")
		cv.So(mustRun(ip, "(append (list 1) (list 2 3))").ValueString(), cv.ShouldEqual, "(1 2 3)")
		cv.So(mustRun(ip, "(length (list 1 2 3))"), cv.ShouldResemble, &ValInt{Val: 3})
		cv.So(mustRun(ip, "(empty? (list))"), cv.ShouldResemble, &ValBool{Val: true})
		cv.So(mustRun(ip, "(null? (list 1))"), cv.ShouldResemble, &ValBool{Val: false})
	})

	cv.Convey(`car and cdr of an empty list are explicit eval errors, not faults`, t, func() {
		ip := NewInterpreter()
		_, err := run(ip, "(car (quote ()))")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, "'car' on empty list")
		_, err = run(ip, "(cdr (quote ()))")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, "'cdr' on empty list")
	})
}

func Test044Quote(t *testing.T) {

	cv.Convey(`(quote (a b c)) yields a list of three literals rendering as (a b c)`, t, func() {
		ip := NewInterpreter()
		v := mustRun(ip, "(quote (a b c))")
		list, ok := v.(*ValList)
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(len(list.Items), cv.ShouldEqual, 3)
		for _, item := range list.Items {
			_, isLit := item.(*ValLiteral)
			cv.So(isLit, cv.ShouldBeTrue)
		}
		cv.So(v.ValueString(), cv.ShouldEqual, "(a b c)")
	})

	cv.Convey(`quote does not evaluate anything, including numbers, which become their textual form`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(quote 42)"), cv.ShouldResemble, &ValLiteral{Text: "42"})
		cv.So(mustRun(ip, "(quote (+ 1 2))").ValueString(), cv.ShouldEqual, "(+ 1 2)")
		cv.So(mustRun(ip, "'(+ 1 2)").ValueString(), cv.ShouldEqual, "(+ 1 2)")
	})
}

func Test045Map(t *testing.T) {

	cv.Convey(`map applies a builtin or a lambda elementwise`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(map sqrt (list 1 4 9))").ValueString(), cv.ShouldEqual, "(1 2 3)")
		mustRun(ip, "(define inc (lambda (x) (+ x 1)))")
		cv.So(mustRun(ip, "(map inc (list 1 2 3))").ValueString(), cv.ShouldEqual, "(2 3 4)")
	})

	cv.Convey(`the first per-element error propagates instead of being dropped`, t, func() {
		ip := NewInterpreter()
		_, err := run(ip, "(map not (list #t 1 #f))")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, "'not'")
	})
}

func Test046BeginScoping(t *testing.T) {

	cv.Convey(`begin evaluates in one isolated child scope and returns the last result`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(begin (define a 1) (define b 2) (+ a b))"), cv.ShouldResemble, &ValInt{Val: 3})

		// the inner definitions do not leak into the root scope
		cv.So(mustRun(ip, "a"), cv.ShouldResemble, &ValSymbol{Name: "a"})
	})

	cv.Convey(`an empty begin is void`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(begin)"), cv.ShouldResemble, &ValVoid{})
	})
}

func Test047UnaryMath(t *testing.T) {

	cv.Convey(`trig and friends take one numeric argument and give a float`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(sin 0)").(*ValFloat).Val, cv.ShouldAlmostEqual, 0.0, 1e-12)
		cv.So(mustRun(ip, "(cos 0)").(*ValFloat).Val, cv.ShouldAlmostEqual, 1.0, 1e-12)
		cv.So(mustRun(ip, "(sqrt 2.0)").(*ValFloat).Val, cv.ShouldAlmostEqual, 1.41421356, 1e-6)
		cv.So(mustRun(ip, "(log (exp 1))").(*ValFloat).Val, cv.ShouldAlmostEqual, 1.0, 1e-12)
		cv.So(mustRun(ip, "(log10 1000)").(*ValFloat).Val, cv.ShouldAlmostEqual, 3.0, 1e-12)

		_, err := run(ip, "(sin #t)")
		cv.So(err, cv.ShouldNotBeNil)
		_, err = run(ip, "(sqrt 1 2)")
		cv.So(err, cv.ShouldNotBeNil)
	})
}

func Test048IfSemantics(t *testing.T) {

	cv.Convey(`if takes exactly three arguments and a boolean test, and only the chosen branch evaluates`, t, func() {
		ip := NewInterpreter()
		cv.So(mustRun(ip, "(if #t 1 2)"), cv.ShouldResemble, &ValInt{Val: 1})
		cv.So(mustRun(ip, "(if #f 1 2)"), cv.ShouldResemble, &ValInt{Val: 2})

		// the untaken branch would error if it ran
		cv.So(mustRun(ip, "(if #t 1 (car (quote ())))"), cv.ShouldResemble, &ValInt{Val: 1})

		_, err := run(ip, "(if 1 2 3)")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, "boolean test")

		_, err = run(ip, "(if #t 1)")
		cv.So(err, cv.ShouldNotBeNil)
	})
}
