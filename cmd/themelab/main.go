// themelab synthesises readable visual themes from a prompt and a corpus
// of seed themes, and renders them as stylesheets, exports and previews.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/kolshub/themelab/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
