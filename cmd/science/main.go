package main

import (
	"context"
	"fmt"
	"os"

	"github.com/example/science/internal/cli"
	"github.com/example/science/internal/wire"
)

func main() {
	ctx := context.Background()

	err := cli.RootCmd().ExecuteContext(ctx)
	code := cli.ReportError(ctx, err, os.Stderr)

	if cerr := wire.Close(); cerr != nil && code == cli.ExitOK {
		fmt.Fprintln(os.Stderr, cerr)
		code = cli.ExitFailure
	}
	os.Exit(code)
}
