// Command calc-engine runs the investment calculations on a JSON payload
// without a server or database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/strscout/backend/src/models"
	"github.com/strscout/backend/src/processors"
	"github.com/strscout/backend/src/security/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc-engine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "calculate", "Mode: calculate, alos or mortgage")
	dataStr := fs.String("data", "", "JSON data payload, or - to read stdin")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	payload := []byte(*dataStr)
	if *dataStr == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		payload = b
	}
	if len(payload) == 0 {
		fmt.Fprintln(stderr, "Error: No data provided")
		return 1
	}

	out, err := execute(*mode, payload)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "Error encoding result: %v\n", err)
		return 1
	}
	return 0
}

func execute(mode string, payload []byte) (any, error) {
	processor := processors.NewMetricsProcessor()

	switch mode {
	case "calculate", "alos":
		var req models.CalculationRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("unmarshaling data: %w", err)
		}
		if err := validation.ValidateStruct(req); err != nil {
			return nil, err
		}
		input := req.Input()
		result := processor.Calculate(input)
		if mode == "calculate" {
			return result, nil
		}
		rng := processors.DefaultAlosRange()
		if req.AlosRange != nil {
			rng = *req.AlosRange
		}
		return processor.AnalyzeAlos(input, result, rng), nil
	case "mortgage":
		var req models.MortgageRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("unmarshaling data: %w", err)
		}
		return processors.Mortgage(req), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
