// Package loop starts a game in the current terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/debtblaster/internal/loop/client"
	"github.com/tomz197/debtblaster/internal/loop/server"
)

// Run plays one local game on r and w until the player quits or ctx is
// cancelled. opts.Logger also serves the local registry.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts client.ClientOptions) error {
	gs := server.NewServer(opts.Logger)
	c, err := client.NewClient(gs, r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
