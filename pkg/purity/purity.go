// Package purity implements the pure_expr oracle the dead-code pass
// consults when seeding liveness: an expression with no side effect of
// its own contributes nothing to seed liveness, leaving its fate to be
// deduced by propagation (pkg/deadcode).
package purity

import "github.com/raymyers/ralph-cc/pkg/ir"

// sideEffectingPrims lists primitive operators the oracle treats as
// impure regardless of the enabled flag. They can trap or transfer
// control on their own.
var sideEffectingPrims = map[string]bool{
	"%raise":         true,
	"%raise_notrace": true,
	"%reraise":       true,
	"%resume":        true,
}

// Oracle decides whether an ir.Expression is pure. It is conjoined with
// the pass's "global dead-code enabled" flag: when disabled, every
// expression is reported impure, which drives every seed to Top and
// reduces the pass to a no-op.
type Oracle struct {
	enabled bool
}

// NewOracle builds an oracle. enabled corresponds to the globaldeadcode
// configuration flag.
func NewOracle(enabled bool) *Oracle {
	return &Oracle{enabled: enabled}
}

// Pure reports whether e has no side effect beyond producing its value.
func (o *Oracle) Pure(e ir.Expression) bool {
	if !o.enabled {
		return false
	}
	switch v := e.(type) {
	case ir.Constant, ir.Field, ir.BlockExpr, ir.Closure:
		return true
	case ir.Prim:
		return !sideEffectingPrims[v.Op]
	case ir.Apply:
		// A call may perform arbitrary effects; only the global-flow
		// oracle's escape/return information can refine this further,
		// and that refinement happens during propagation, not seeding.
		return false
	default:
		return false
	}
}
