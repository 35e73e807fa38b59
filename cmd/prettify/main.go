// Package main provides the CLI entrypoint for prettify.
//
// prettify renders readable, depth-bounded type previews:
//   - hover: the declaration of the symbol at a source offset
//   - tree: the structured type tree behind a preview
//   - render: a type from a YAML type graph
//   - pretty: reflow declaration text
//   - node: the TypeScript syntax node at an offset
//   - serve: answer editor completion requests over stdio
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"

	"prettify-type/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Run(ctx, os.Args[1:], cli.IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	if err == nil {
		return
	}

	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Println(flagsErr.Message)

		return
	}

	fmt.Fprintln(os.Stderr, "prettify:", err)
	stop()
	os.Exit(1)
}
