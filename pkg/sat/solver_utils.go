package sat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// ExternalConfig describes how to launch an external OPB solver
type ExternalConfig struct {
	Path string   `mapstructure:"path"`
	Args []string `mapstructure:"args"`
}

// NewExternalSolverFromConfig decodes a loosely typed configuration section (e.g. read from YAML or JSON) into an external solver
func NewExternalSolverFromConfig(raw map[string]any) (SATSolver, error) {
	var config ExternalConfig
	if err := mapstructure.Decode(raw, &config); err != nil {
		return nil, fmt.Errorf("cannot decode external solver config: %w", err)
	}
	if config.Path == "" {
		return nil, fmt.Errorf("external solver path is not present in config")
	}
	return NewExternalSolver(config.Path, config.Args...), nil
}

func parseStatus(solverOutput string) string {
	statusLine, ok := lo.Find(strings.Split(solverOutput, "\n"), func(line string) bool {
		return strings.HasPrefix(line, "s ")
	})
	if !ok {
		return ""
	}
	return strings.TrimSpace(statusLine[2:])
}

// parseSolution reads every "v" line of the solver output; literals may be written as "x3", "-x3" or plain "3", "-3".
// Variables the solver did not mention are taken as false
func parseSolution(solverOutput string, variables uint64) (SATSolution, error) {
	values := lo.FlatMap(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 1 && line[0] == 'v'
		}),
		func(line string, _ int) []string {
			return strings.Fields(line[1:])
		},
	)

	assignment := make(map[int64]bool, len(values))
	for _, valueStr := range values {
		negated := strings.HasPrefix(valueStr, "-")
		valueStr = strings.TrimPrefix(strings.TrimPrefix(valueStr, "-"), "x")
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %v", err)
		} else if value == 0 {
			continue
		}
		assignment[value] = !negated
	}

	solution := make(SATSolution, 0, variables)
	for variable := int64(1); variable <= int64(variables); variable++ {
		if assignment[variable] {
			solution = append(solution, variable)
		} else {
			solution = append(solution, -variable)
		}
	}
	return solution, nil
}
