// Package constraint implements the condition language that gates
// build-system declarations: a comma-separated list of clauses over a
// resolved configuration, all of which must hold. The empty condition is
// always satisfied.
//
// Clause forms:
//
//	version>=2.0    version compared under a vercmp scheme
//	                (operators ==, !=, >=, <=, >, <)
//	os=linux        platform match (= and != only)
//	arch=arm64      platform match (= and != only)
//	+shared         variant is set to a truthy value
//	~shared         variant is unset or falsy
//	pic=on          variant equals a value (= and != only)
package constraint

import (
	"fmt"
	"strings"

	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/vercmp"
)

// Evaluator answers whether a resolved configuration satisfies a declared
// condition. The strategy engine depends only on this interface.
type Evaluator interface {
	Satisfies(cond string, c conf.Resolved) (bool, error)
}

// Default is the stock evaluator. The zero value compares versions with
// the gnu scheme.
type Default struct {
	Scheme vercmp.Scheme
}

var _ Evaluator = Default{}

// Satisfies parses cond and evaluates it against c. Malformed conditions
// return an error, never a silent false.
func (d Default) Satisfies(cond string, c conf.Resolved) (bool, error) {
	expr, err := Parse(cond)
	if err != nil {
		return false, err
	}
	return expr.Eval(c, d.scheme())
}

func (d Default) scheme() vercmp.Scheme {
	if d.Scheme != nil {
		return d.Scheme
	}
	return vercmp.Default()
}

type clauseKind int

const (
	clauseCompare clauseKind = iota // key op value
	clauseTruthy                    // +variant
	clauseFalsy                     // ~variant
)

type clause struct {
	kind  clauseKind
	key   string
	op    string
	value string
}

// Expr is a parsed condition.
type Expr struct {
	clauses []clause
}

// operators in match order: two-character operators first so that ">="
// is not read as ">" followed by "=".
var operators = []string{"==", "!=", ">=", "<=", ">", "<", "="}

// Parse parses a condition string. The empty string parses to the
// always-true expression.
func Parse(cond string) (Expr, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return Expr{}, nil
	}

	var expr Expr
	for _, raw := range strings.Split(cond, ",") {
		cl, err := parseClause(strings.TrimSpace(raw))
		if err != nil {
			return Expr{}, fmt.Errorf("failed to parse condition %q: %w", cond, err)
		}
		expr.clauses = append(expr.clauses, cl)
	}
	return expr, nil
}

func parseClause(s string) (clause, error) {
	if s == "" {
		return clause{}, fmt.Errorf("empty clause")
	}

	switch s[0] {
	case '+':
		name := strings.TrimSpace(s[1:])
		if name == "" {
			return clause{}, fmt.Errorf("missing variant name in %q", s)
		}
		return clause{kind: clauseTruthy, key: name}, nil
	case '~':
		name := strings.TrimSpace(s[1:])
		if name == "" {
			return clause{}, fmt.Errorf("missing variant name in %q", s)
		}
		return clause{kind: clauseFalsy, key: name}, nil
	}

	for _, op := range operators {
		i := strings.Index(s, op)
		if i < 0 {
			continue
		}
		key := strings.TrimSpace(s[:i])
		value := strings.TrimSpace(s[i+len(op):])
		if key == "" || value == "" {
			return clause{}, fmt.Errorf("incomplete clause %q", s)
		}
		if op == "=" {
			op = "=="
		}
		if ordered(op) && key != "version" {
			return clause{}, fmt.Errorf("ordered comparison %q only applies to version", s)
		}
		return clause{kind: clauseCompare, key: key, op: op, value: value}, nil
	}

	return clause{}, fmt.Errorf("no operator in clause %q", s)
}

func ordered(op string) bool {
	switch op {
	case ">=", "<=", ">", "<":
		return true
	}
	return false
}

// Eval evaluates the expression against a resolved configuration,
// comparing versions with the given scheme.
func (e Expr) Eval(c conf.Resolved, scheme vercmp.Scheme) (bool, error) {
	for _, cl := range e.clauses {
		ok, err := cl.eval(c, scheme)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (cl clause) eval(c conf.Resolved, scheme vercmp.Scheme) (bool, error) {
	switch cl.kind {
	case clauseTruthy:
		v, ok := c.Variant(cl.key)
		return ok && truthy(v), nil
	case clauseFalsy:
		v, ok := c.Variant(cl.key)
		return !ok || !truthy(v), nil
	}

	switch cl.key {
	case "version":
		cmp := scheme.Compare(c.Module.Version, cl.value)
		switch cl.op {
		case "==":
			return cmp == 0, nil
		case "!=":
			return cmp != 0, nil
		case ">=":
			return cmp >= 0, nil
		case "<=":
			return cmp <= 0, nil
		case ">":
			return cmp > 0, nil
		case "<":
			return cmp < 0, nil
		}
	case "os":
		return matchEq(c.Platform.OS, cl.op, cl.value)
	case "arch":
		return matchEq(c.Platform.Arch, cl.op, cl.value)
	default:
		v, _ := c.Variant(cl.key)
		return matchEq(v, cl.op, cl.value)
	}
	return false, fmt.Errorf("failed to evaluate clause: unknown operator %q", cl.op)
}

func matchEq(actual, op, want string) (bool, error) {
	switch op {
	case "==":
		return actual == want, nil
	case "!=":
		return actual != want, nil
	}
	return false, fmt.Errorf("failed to evaluate clause: operator %q not allowed here", op)
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "", "off", "false", "no", "0":
		return false
	}
	return true
}
