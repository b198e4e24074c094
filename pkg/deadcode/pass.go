package deadcode

import (
	"github.com/raymyers/ralph-cc/pkg/globalflow"
	"github.com/raymyers/ralph-cc/pkg/ir"
	"github.com/raymyers/ralph-cc/pkg/purity"
)

// Config holds the pass's configuration surface: whether it is enabled
// at all and where to send its structured trace.
type Config struct {
	// Enabled mirrors the --globaldeadcode flag. When false, Run
	// installs the sentinel but performs no analysis-driven rewriting:
	// every expression is reported impure by the purity oracle and
	// every variable's seed is raised to Top, so nothing is ever
	// replaced.
	Enabled bool
	Tracer  Tracer
}

// Tracer receives the per-stage timing and size events Run emits. It
// is satisfied by *ZerologTracer for production use and by noopTracer
// in tests that don't care about tracing.
type Tracer interface {
	StageDone(stage string, nanos int64)
	Summary(nv int, dead, top int)
}

type noopTracer struct{}

func (noopTracer) StageDone(string, int64) {}
func (noopTracer) Summary(int, int, int)   {}

// Run executes the full S1-S5 pipeline against prog, using info as the
// global-flow collaborator, and returns the sentinel variable it
// installed. prog is mutated in place.
func Run(prog *ir.Program, info *globalflow.GlobalInfo, cfg Config) ir.Var {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noopTracer{}
	}
	pure := purity.NewOracle(cfg.Enabled)

	nv := prog.Pool.Count()

	defs := timed(tracer, "definitions", func() []Def {
		return Definitions(nv, prog)
	})
	g := timed(tracer, "usegraph", func() UseGraph {
		return Usages(nv, prog, info, defs, pure)
	})
	seed := timed(tracer, "seed", func() []Liveness {
		return Seed(nv, prog, info, defs, pure)
	})
	if !cfg.Enabled {
		for i := range seed {
			seed[i] = Top
		}
	}
	lv := timed(tracer, "solve", func() []Liveness {
		return Solve(nv, g, seed, defs)
	})

	zero := AddSentinel(prog)
	// AddSentinel grew the pool; lv must cover the new variable too,
	// and the sentinel itself is never considered dead.
	lv = append(lv, Top)

	timedVoid(tracer, "rewrite", func() {
		Zero(prog, lv, zero)
	})

	dead, top := 0, 0
	for _, l := range lv[:nv] {
		switch {
		case l.IsDead():
			dead++
		case l.IsTop():
			top++
		}
	}
	tracer.Summary(nv, dead, top)

	return zero
}
