package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/freand76/kalkon/internal/domain"
)

// RunPipe evaluates stdin line by line for non-interactive use. Every
// value goes to out, every input mistake to errOut with its line
// number, and the run keeps going so one bad line cannot hide the
// rest. A non-nil error is returned when any line failed.
func RunPipe(calc domain.CalcService, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	failed := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		resp, err := calc.Evaluate(domain.CalcRequest{Expression: line, Commit: true})
		if err != nil {
			return err
		}
		if resp.IsError {
			failed++
			fmt.Fprintf(errOut, "line %d: %s\n", lineNo, resp.Status)
			continue
		}
		if resp.Result != "" {
			fmt.Fprintln(out, resp.Result)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}
