package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/mealmate/backend/internal/client"
)

// offerUndo waits for a line on stdin until the trash window closes. A line
// undoes the pending deletion, anything else lets it go through.
func offerUndo(ctx context.Context, cmd *cobra.Command, trash *client.Trash, what string) error {
	expires, ok := trash.Pending()
	if !ok {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Deleted %s. Press Enter within %s to undo.\n", what, time.Until(expires).Round(time.Second))

	line := make(chan struct{}, 1)
	go func(r io.Reader) {
		if _, err := bufio.NewReader(r).ReadString('\n'); err == nil {
			line <- struct{}{}
		}
	}(cmd.InOrStdin())

	timer := time.NewTimer(time.Until(expires))
	defer timer.Stop()

	select {
	case <-line:
		if err := trash.Undo(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "Restored %s.\n", what)
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}
	trash.Flush(context.WithoutCancel(ctx))
	return nil
}
