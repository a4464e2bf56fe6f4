// doorcut derives door and frame cutouts from a structural opening and
// writes one DXF cutting drawing per leaf face.
//
// Build:
//
//	go build -o doorcut ./cmd/doorcut
//
// Cross-compile:
//
//	GOOS=windows GOARCH=amd64 go build -o doorcut.exe ./cmd/doorcut
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/doorcut/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
