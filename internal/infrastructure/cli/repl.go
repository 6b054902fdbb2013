package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
	"github.com/freand76/kalkon/internal/version"
)

const replPrompt = "> "

const replHelp = `Commands:
  :dec :hex :bin   set the output base
  :float :int      set the result type
  :i8 .. :i64      signed result types
  :u8 .. :u64      unsigned result types
  :clear           clear the result window
  :vars            list variables
  :history         show the result window
  :copy            copy the last result
  :help            show this help
  :quit            leave the session`

// repl drives the interactive calculator session over stdio.
type repl struct {
	calc   domain.CalcService
	render *Renderer
	clip   ports.Clipboard
	in     io.Reader
	out    io.Writer

	lastResult string
}

// RunREPL reads expressions line by line until :quit or EOF. Every
// line commits; input mistakes are reported with a caret under the
// offending column and never end the session.
func RunREPL(calc domain.CalcService, render *Renderer, in io.Reader, out io.Writer) error {
	r := &repl{calc: calc, render: render, clip: NewClipboard(), in: in, out: out}
	return r.run()
}

func (r *repl) run() error {
	fmt.Fprintln(r.out, r.render.Status(fmt.Sprintf("kalkon %s (:help for commands, :quit to leave)", version.Version)))

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q", ":exit":
			return nil
		case ":help":
			fmt.Fprintln(r.out, replHelp)
			continue
		case ":vars":
			r.printVars()
			continue
		case ":history":
			r.printWindow()
			continue
		case ":copy":
			r.copyLastResult()
			continue
		}

		resp, err := r.calc.Evaluate(domain.CalcRequest{Expression: line, Commit: true})
		if err != nil {
			fmt.Fprintln(r.out, r.render.Error("error: "+err.Error()))
			continue
		}
		r.show(line, resp)
	}
}

// show prints the outcome of one committed line.
func (r *repl) show(line string, resp domain.CalcResponse) {
	if !resp.IsError && resp.Result != "" {
		r.lastResult = resp.Result
	}
	if resp.IsError {
		if caret := r.render.Caret(len(replPrompt), resp.ErrorColumn); caret != "" {
			fmt.Fprintln(r.out, caret)
		}
		fmt.Fprintln(r.out, r.render.Error(resp.Status))
		return
	}

	if strings.HasPrefix(line, ":") {
		if resp.Status != "" {
			fmt.Fprintln(r.out, r.render.Status(resp.Status))
		}
		if resp.StackUpdated {
			r.printWindow()
		}
		return
	}

	if resp.StackUpdated {
		fmt.Fprintln(r.out, "= "+r.render.Result(resp.Result))
		if resp.Status != "" {
			fmt.Fprintln(r.out, r.render.Status(resp.Status))
		}
		return
	}

	// Assignment: no stack push, the status names the binding.
	if resp.Status != "" {
		fmt.Fprintln(r.out, r.render.Status(resp.Status))
	}
}

func (r *repl) copyLastResult() {
	if r.lastResult == "" {
		fmt.Fprintln(r.out, r.render.Status("Nothing to copy yet."))
		return
	}
	if err := r.clip.Copy(r.lastResult); err != nil {
		fmt.Fprintln(r.out, r.render.Error("clipboard: "+err.Error()))
		return
	}
	fmt.Fprintln(r.out, r.render.Status("Copied "+r.lastResult))
}

func (r *repl) printVars() {
	vars := r.calc.Vars()
	if len(vars) == 0 {
		fmt.Fprintln(r.out, r.render.Status("No variables set."))
		return
	}
	for _, v := range vars {
		fmt.Fprintf(r.out, "%s = %s\n", v.Name, r.render.Result(v.Value))
	}
}

func (r *repl) printWindow() {
	for _, row := range r.calc.Window() {
		fmt.Fprintf(r.out, "%s = %s\n", row.Expression, r.render.Result(row.Result))
	}
	fmt.Fprintln(r.out, r.render.Status(fmt.Sprintf("mode: %s/%s", r.calc.System(), r.calc.Type())))
}
