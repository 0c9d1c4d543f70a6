// Package tt supports table-driven tests with little boilerplate, for the
// many small pure functions scattered through md (indentWidth, flanking,
// matchBulletMarker, normalizeLabel, and friends) that take a few
// arguments and return a few values. Adapted from the teacher's pkg/tt,
// modernized to use any in place of interface{}.
package tt

import (
	"bytes"
	"fmt"
	"reflect"
)

// Table is a list of test cases for one function.
type Table []*Case

// Case is one test case, built by Args and refined by Rets.
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args starts a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets adds a set of expected return values to the Case; it may be called
// more than once, and Test then reports an error for every set the actual
// return values do not match (Args(x).Rets(a).Rets(b) passes only if both
// a and b match).
// Each matcher may implement Matcher, in which case its Match method
// decides the comparison; otherwise reflect.DeepEqual is used.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnToTest names a function under test and how to format its failures.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
	retsFmt string
}

// Fn wraps a function with the name it should be reported under.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt overrides the default comma-joined argument formatting.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// RetsFmt overrides the default comma-joined return-value formatting.
func (fn *FnToTest) RetsFmt(s string) *FnToTest {
	fn.retsFmt = s
	return fn
}

// T is the subset of *testing.T that Test needs, so callers can pass a
// *testing.T or a *testing.B interchangeably.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test calls fn.body with every Case's arguments and reports a t.Errorf
// for each of its Rets sets that the return values do not match.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if !match(retsMatcher, rets) {
				argsString := fn.argsFmt
				if argsString == "" {
					argsString = sprintCommaDelimited(test.args...)
				} else {
					argsString = fmt.Sprintf(fn.argsFmt, test.args...)
				}
				retsString, wantRetsString := sprintRets(fn, rets), sprintRets(fn, retsMatcher)
				t.Errorf("%s(%s) -> %s, want %s", fn.name, argsString, retsString, wantRetsString)
			}
		}
	}
}

func sprintRets(fn *FnToTest, rets []any) string {
	if fn.retsFmt != "" {
		return fmt.Sprintf(fn.retsFmt, rets...)
	}
	if len(rets) == 1 {
		return fmt.Sprint(rets[0])
	}
	return "(" + sprintCommaDelimited(rets...) + ")"
}

// RetValue exists only so Matcher can't be implemented by accident: a
// type implementing Match(any) bool for an unrelated reason would
// otherwise silently become a Matcher too.
type RetValue any

// Matcher customizes how a Rets value is compared against the actual
// return value.
type Matcher interface {
	Match(RetValue) bool
}

// Any matches any return value; useful when a Case only cares about
// some of a multi-value return.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

func match(matchers, actual []any) bool {
	for i, matcher := range matchers {
		if !matchOne(matcher, actual[i]) {
			return false
		}
	}
	return true
}

func matchOne(m, a any) bool {
	if m, ok := m.(Matcher); ok {
		return m.Match(a)
	}
	return reflect.DeepEqual(m, a)
}

func sprintCommaDelimited(args ...any) string {
	var b bytes.Buffer
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, arg)
	}
	return b.String()
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			var v any
			argsReflect[i] = reflect.ValueOf(&v).Elem()
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}
