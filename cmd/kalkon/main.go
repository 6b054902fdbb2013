package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/infrastructure/cli"
)

func main() {
	// A .env next to the binary may carry KALKON_* overrides; absence
	// is the normal case.
	_ = godotenv.Load()

	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv(domain.DebugEnv)
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
