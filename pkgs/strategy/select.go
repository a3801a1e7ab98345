package strategy

import (
	"go.trai.ch/zerr"

	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/constraint"
)

// Select chooses the build system to use for one resolved
// configuration. With no explicit choice it scans declarations in
// order and returns the first whose condition holds; a declaration
// without a condition always holds. An explicit choice short-circuits
// the scan: the named system must be declared and its condition must
// hold, otherwise the request fails.
//
// Select is a pure function of its inputs. Repeated calls with the
// same registry and configuration return the same declaration.
func Select(reg *Registry, eval constraint.Evaluator, c conf.Resolved, explicit string) (Declaration, error) {
	if explicit != "" {
		d, ok := reg.Lookup(explicit)
		if !ok {
			err := zerr.With(ErrUnknownStrategy, "strategy", explicit)
			return Declaration{}, zerr.With(err, "declared", reg.Names())
		}
		ok, err := satisfied(eval, d.Condition, c)
		if err != nil {
			return Declaration{}, err
		}
		if !ok {
			err := zerr.With(ErrUnsatisfiedStrategy, "strategy", explicit)
			err = zerr.With(err, "condition", d.Condition)
			return Declaration{}, zerr.With(err, "configuration", c.Key())
		}
		return d, nil
	}

	for _, d := range reg.Declarations() {
		ok, err := satisfied(eval, d.Condition, c)
		if err != nil {
			return Declaration{}, err
		}
		if ok {
			return d, nil
		}
	}
	err := zerr.With(ErrNoApplicableStrategy, "declared", reg.Names())
	return Declaration{}, zerr.With(err, "configuration", c.Key())
}

func satisfied(eval constraint.Evaluator, cond string, c conf.Resolved) (bool, error) {
	if cond == "" {
		return true, nil
	}
	return eval.Satisfies(cond, c)
}
