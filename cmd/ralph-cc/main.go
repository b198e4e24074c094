package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/raymyers/ralph-cc/pkg/deadcode"
	"github.com/raymyers/ralph-cc/pkg/globalflow"
	"github.com/raymyers/ralph-cc/pkg/ir"
)

// version is set at build time via -ldflags; it defaults to "dev" for
// local builds so TestVersion always has something non-empty to check.
var version = "dev"

var (
	globalDeadcode bool
	showTimes      bool
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ralph-cc [program.yaml]",
		Short:   "Run the global dead-code pass over a closure/tuple IR program",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], out, errOut)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.Flags().BoolVarP(&globalDeadcode, "globaldeadcode", "d", false, "enable the global dead-code analysis and rewrite")
	cmd.Flags().BoolVarP(&showTimes, "times", "t", false, "trace per-stage timing to stderr")

	return cmd
}

func runFile(path string, out, errOut io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ralph-cc: %w", err)
	}

	prog, err := ir.DecodeProgram(src)
	if err != nil {
		return fmt.Errorf("ralph-cc: %w", err)
	}

	cfg := deadcode.Config{Enabled: globalDeadcode}
	if showTimes {
		log := zerolog.New(zerolog.ConsoleWriter{Out: errOut}).With().Timestamp().Logger()
		cfg.Tracer = deadcode.NewZerologTracer(log)
	}

	dumpIR := showTimes || globalDeadcode
	if dumpIR {
		fmt.Fprintln(errOut, "--- pre-rewrite IR ---")
		ir.NewPrinter(errOut).PrintProgram(prog)
	}

	info := globalflow.Conservative(prog)
	deadcode.Run(prog, info, cfg)

	if dumpIR {
		fmt.Fprintln(errOut, "--- post-rewrite IR ---")
		ir.NewPrinter(errOut).PrintProgram(prog)
	}

	encoded, err := ir.EncodeProgram(prog)
	if err != nil {
		return fmt.Errorf("ralph-cc: %w", err)
	}

	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("ralph-cc: %w", err)
	}

	outPath := dceOutputFilename(path)
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("ralph-cc: %w", err)
	}
	return nil
}

// dceOutputFilename mirrors the original.dce.yaml sibling-file naming
// convention: strip the input's own extension and insert ".dce.yaml".
func dceOutputFilename(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + ".dce.yaml"
}
