package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/limaJavier/gradplan/internal/logger"
	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/limaJavier/gradplan/pkg/planner"
	"github.com/samber/lo"
)

const (
	executablePath   = "../../bin/gradplan"
	catalogDirectory = "../../testdata/catalogs/"
)

type ResultType int

const (
	solved ResultType = iota
	noPlan
	invalid
)

var (
	resultTypes = map[ResultType]string{
		solved:  "solved",
		noPlan:  "no-plan",
		invalid: "invalid",
	}
	log = logger.New(logger.Config{Level: "info", Pretty: true})
)

type TestMetadata struct {
	Catalog string
	Major   string
	Courses int
}

type BenchmarkResult struct {
	Solver        string
	Test          TestMetadata
	PlanCourses   int
	Terms         int
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	tests := getTests(catalogDirectory)
	solvers := getSolvers()
	results := make([]BenchmarkResult, 0, len(tests)*len(solvers))

	for _, test := range tests {
		for _, solver := range solvers {
			log.Info().Str("catalog", test.Catalog).Str("major", test.Major).Str("solver", solver).Msg("benchmarking")

			result := measure(solver, test)
			results = append(results, result)
		}
	}

	toCsv(results)
}

// getTests pairs every catalog file of the directory with every one of its majors
func getTests(directory string) []TestMetadata {
	catalogFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read directory")
	}

	tests := make([]TestMetadata, 0)
	for _, file := range catalogFiles {
		filename := filepath.Join(directory, file.Name())
		catalog, err := model.LoadCatalog(filename)
		if err != nil {
			log.Fatal().Err(err).Str("file", filename).Msg("cannot parse catalog file")
		}

		for _, major := range catalog.Majors() {
			tests = append(tests, TestMetadata{
				Catalog: filename,
				Major:   major.Name,
				Courses: len(catalog.Courses()),
			})
		}
	}
	return tests
}

// getSolvers benchmarks the external solver only when one is configured
func getSolvers() []string {
	solvers := []string{"gophersat"}
	if _, ok := os.LookupEnv("GRADPLAN_SOLVER_PATH"); ok {
		solvers = append(solvers, "external")
	}
	return solvers
}

func measure(solver string, test TestMetadata) BenchmarkResult {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-solver", solver, "-catalog", test.Catalog, "-majors", test.Major)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	result := BenchmarkResult{Solver: solver, Test: test}
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result.Result = solved
		var plan planner.Plan
		if err := json.Unmarshal(stdOut.Bytes(), &plan); err != nil {
			log.Fatal().Err(err).Msg("cannot parse plan")
		}
		result.PlanCourses = len(plan.Courses)
		result.Terms = len(plan.Terms)
	case 20:
		result.Result = noPlan
	case 15:
		result.Result = invalid
	default:
		log.Fatal().
			Str("catalog", test.Catalog).
			Str("major", test.Major).
			Str("solver", solver).
			Str("stderr", stdErr.String()).
			Msg("an error occurred during the execution of \"gradplan\"")
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatal().Msgf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	result.Duration = parseDurationLine(getLine("wall clock"))
	result.Memory = parseMemoryLine(getLine("maximum resident set size"))
	result.CpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))
	return result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panic().Err(err).Msg("cannot create CSV file")
	}
	defer file.Close()

	if err := writeCsv(file, results); err != nil {
		log.Panic().Err(err).Msg("cannot write CSV file")
	}
}

func writeCsv(file io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Catalog", "Major", "Solver", "Courses", "Plan Courses", "Terms", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Test.Catalog,
			result.Test.Major,
			result.Solver,
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.PlanCourses),
			fmt.Sprintf("%d", result.Terms),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	return nil
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatal().Msgf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / 1024
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
