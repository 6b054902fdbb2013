package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/infrastructure/cli"
)

// newRoot builds the command tree against a throwaway config file so
// tests never touch the real home directory.
func newRoot(t *testing.T) *cobra.Command {
	t.Helper()
	t.Setenv(domain.ConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("NO_COLOR", "1")
	root, err := cli.NewRootCmd(context.Background(), cli.Options{})
	if err != nil {
		t.Fatalf("NewRootCmd returned error: %v", err)
	}
	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_BareArgumentsEvaluate(t *testing.T) {
	root := newRoot(t)

	out, err := execute(t, root, "40", "+", "2")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "42" {
		t.Errorf("output = %q, want 42", got)
	}
}

func TestRootCmd_ExpressionErrorsSurface(t *testing.T) {
	root := newRoot(t)

	_, err := execute(t, root, "1/0")
	if err == nil {
		t.Fatal("Execute accepted a division by zero")
	}
	if !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("error = %v, want division by zero", err)
	}
}

func TestRootCmd_SubcommandsStillDispatch(t *testing.T) {
	root := newRoot(t)

	out, err := execute(t, root, "version")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(out, "kalkon version") {
		t.Errorf("output = %q, want the version banner", out)
	}
}

func TestRootCmd_EvalSubcommandHonorsFlags(t *testing.T) {
	root := newRoot(t)

	out, err := execute(t, root, "eval", "--preview-only", "2*3")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "6" {
		t.Errorf("output = %q, want 6", got)
	}
}
