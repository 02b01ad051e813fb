package sat

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// externalSolver drives any pseudo-boolean solver executable that reads an OPB file given as last argument
// and answers in the competition output format ("s ..." status line and "v ..." value lines)
type externalSolver struct {
	path string
	args []string
}

func NewExternalSolver(path string, args ...string) SATSolver {
	return &externalSolver{
		path: path,
		args: args,
	}
}

func (solver *externalSolver) Solve(sat SAT) (SATSolution, error) {
	return solver.run(sat, nil)
}

func (solver *externalSolver) Minimize(sat SAT, objective []int64) (SATSolution, error) {
	return solver.run(sat, objective)
}

func (solver *externalSolver) run(sat SAT, objective []int64) (SATSolution, error) {
	opb := sat.ToOPB(objective) // Transform SAT into OPB string format

	// Create a temporary file to hold the OPB content
	tmpFile, err := os.CreateTemp("", "instance-*.opb")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Ensure the file is removed after execution

	// Write the OPB content to the temporary file
	if _, err := tmpFile.WriteString(opb); err != nil {
		return nil, fmt.Errorf("failed to write OPB to temporary file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %v", err)
	}

	cmd := exec.Command(solver.path, solver.args...)
	// Set the temporary file as the input for the command
	cmd.Args = append(cmd.Args, tmpFile.Name())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Exit-code of 10 stands for satisfiable, 20 for unsatisfiable and 30 for optimum found
	err = cmd.Run()
	exitCode := cmd.ProcessState.ExitCode()
	if err != nil && exitCode != 10 && exitCode != 20 && exitCode != 30 {
		return nil, fmt.Errorf("an error occurred during %v execution: %v : %v", solver.path, err.Error(), stderr.String())
	}

	status := parseStatus(stdOut.String())
	if exitCode == 20 || status == "UNSATISFIABLE" {
		return nil, nil
	} else if status != "SATISFIABLE" && status != "OPTIMUM FOUND" {
		return nil, fmt.Errorf("%v gave no answer: status %q", solver.path, status)
	}

	return parseSolution(stdOut.String(), sat.Variables)
}
