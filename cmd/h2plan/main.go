package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/eliahaenggi/h2plan/heuristic"
	"github.com/eliahaenggi/h2plan/internal/pi2"
	"github.com/eliahaenggi/h2plan/internal/sastask"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagVariant = flag.String(
	"heuristic",
	"h2",
	"heuristic variant to evaluate: h2 or h2_dual",
)

var flagVerbose = flag.Bool(
	"verbose",
	false,
	"run the heuristic at Verbose verbosity (the compiled-task dump is controlled by -dump_compiled)",
)

var flagDumpCompiled = flag.Bool(
	"dump_compiled",
	false,
	"compile the task with the Pi-squared compiler and print its meta-atom count and meta-operators",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing task file")
	}
	return &config{
		taskFile:     flag.Arg(0),
		variant:      *flagVariant,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		verbose:      *flagVerbose,
		dumpCompiled: *flagDumpCompiled,
	}, nil
}

type config struct {
	taskFile     string
	variant      string
	memProfile   bool
	cpuProfile   bool
	verbose      bool
	dumpCompiled bool
}

func heuristicOptions(cfg *config) heuristic.Options {
	opts := heuristic.DefaultOptions
	opts.Description = cfg.variant
	if cfg.verbose {
		opts.Verbosity = heuristic.Verbose
	}
	return opts
}

func run(cfg *config) error {
	t, err := sastask.Load(cfg.taskFile)
	if err != nil {
		return fmt.Errorf("could not load task: %w", err)
	}

	ctor, ok := heuristic.Registry[cfg.variant]
	if !ok {
		return fmt.Errorf("unknown heuristic %q", cfg.variant)
	}
	h, err := ctor(t, heuristicOptions(cfg))
	if err != nil {
		return fmt.Errorf("could not build heuristic: %w", err)
	}

	fmt.Printf("c variables: %d\n", t.NumVariables())
	fmt.Printf("c operators: %d\n", len(t.Operators()))

	if cfg.dumpCompiled {
		compiled, err := pi2.Compile(t)
		if err != nil {
			return fmt.Errorf("could not compile task: %w", err)
		}
		fmt.Printf("c meta-atoms: %d\n", compiled.NumVariables())
		fmt.Print(compiled.DebugDump())
	}

	elapsed := time.Now()
	value := h.Compute(t.InitialState())
	duration := time.Since(elapsed)

	fmt.Printf("c time (sec): %f\n", duration.Seconds())
	if value == heuristic.DeadEnd {
		fmt.Printf("c h(s0):      DEAD_END\n")
	} else {
		fmt.Printf("c h(s0):      %d\n", value)
	}
	fmt.Printf("c dead ends reliable: %t\n", h.DeadEndsAreReliable())

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
