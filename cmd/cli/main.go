package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/gradplan/internal/config"
	"github.com/limaJavier/gradplan/internal/logger"
	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/limaJavier/gradplan/pkg/planner"
	"github.com/samber/lo"
)

const (
	exitSuccess      = 10
	exitNoPlan       = 20
	exitVerification = 15
	exitFailure      = 1
)

var validSolvers = []string{config.GophersatSolver, config.ExternalSolver}

func main() {
	// Define arguments
	catalogPtr := flag.String("catalog", "", "Path to the catalog file (JSON or YAML)")
	majorsPtr := flag.String("majors", "", "Comma separated list of majors to plan for")
	completedPtr := flag.String("completed", "", "Comma separated list of completed course codes")
	creditsPtr := flag.Int("credits", 0, "Maximum credits per term; if not positive, the configured value is used")
	solverPtr := flag.String("solver", "", "Solver to use. Allowed values are: \"gophersat\" and \"external\"; if empty, the configured solver is used")
	configPtr := flag.String("config", "", "Path to the YAML configuration file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	dumpPtr := flag.String("dump", "", "Path to the file where the OPB instance will be written")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(exitFailure)
	}
	log := logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	solverStr := strings.ToLower(*solverPtr)
	if solverStr != "" {
		cfg.Solver.Name = solverStr
	}
	maxCredits := cfg.MaxCreditsPerTerm
	if *creditsPtr > 0 {
		maxCredits = *creditsPtr
	}
	majors := splitList(*majorsPtr)
	completed := splitList(*completedPtr)

	// Validate arguments
	if !slices.Contains(validSolvers, cfg.Solver.Name) {
		log.Fatal().Msgf("%v is not a valid solver", cfg.Solver.Name)
	} else if *catalogPtr == "" {
		log.Fatal().Msg("a catalog file must be specified")
	} else if len(majors) == 0 {
		log.Fatal().Msg("at least one major must be specified")
	}

	// Extract catalog
	catalog, err := model.LoadCatalog(*catalogPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load catalog file")
	}

	// Initialize engines
	solver, err := cfg.NewSolver()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize solver")
	}
	engine := planner.New(catalog, catalog, solver, log,
		planner.WithMaxCredits(maxCredits),
		planner.WithIncludeCompleted(cfg.IncludeCompleted),
	)

	if *dumpPtr != "" {
		if err := dump(*dumpPtr, catalog, majors, completed); err != nil {
			log.Error().Err(err).Msg("cannot dump instance")
		}
	}

	// Build plan
	plan, err := engine.Plan(context.Background(), planner.Request{
		Majors:     majors,
		Completed:  completed,
		MaxCredits: maxCredits,
	})
	if errors.Is(err, planner.ErrUnsatisfiable) || errors.Is(err, planner.ErrCreditDeadlock) || errors.Is(err, planner.ErrCyclicPrerequisite) {
		log.Warn().Err(err).Msg("no valid plan exists")
		os.Exit(exitNoPlan)
	} else if err != nil {
		log.Error().Err(err).Msg("an error occurred during plan construction")
		os.Exit(exitFailure)
	}

	// Verify plan correctness
	var satisfied []string
	if !cfg.IncludeCompleted {
		satisfied = completed
	}
	courses := lo.FilterMap(plan.Courses, func(code string, _ int) (model.Course, bool) { return catalog.Lookup(code) })
	if err := planner.Verify(plan.Terms, courses, maxCredits, lo.Intersect(satisfied, plan.Courses)...); err != nil {
		log.Error().Err(err).Msg("plan verification failed")
		os.Exit(exitVerification)
	}

	// Marshal output into json
	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Fatal().Err(err).Msg("an error occurred while building output json")
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(planJson))
	} else if err := os.WriteFile(*outFilePathPtr, planJson, 0666); err != nil {
		log.Fatal().Err(err).Msg("an error occurred while writing to the output file")
	}

	log.Info().
		Str("plan", plan.ID.String()).
		Int("courses", len(plan.Courses)).
		Int("terms", len(plan.Terms)).
		Msg("done")
	os.Exit(exitSuccess)
}

// dump writes the minimization instance of the request in OPB format
func dump(file string, catalog *model.Catalog, majorNames, completed []string) error {
	majors := lo.FilterMap(majorNames, func(name string, _ int) (model.Major, bool) { return catalog.Major(name) })
	f, err := planner.NewMinimizer(nil, catalog).Encode(majors, completed)
	if err != nil {
		return err
	}
	return os.WriteFile(file, []byte(f.Instance().ToOPB(f.Table().SearchSpace())), 0666)
}

func splitList(list string) []string {
	return lo.Compact(lo.Map(strings.Split(list, ","), func(item string, _ int) string { return strings.TrimSpace(item) }))
}
