package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"

	"meditracker/internal/model"
)

// ConsoleEmitter prints a banner alert to the session terminal, with an
// optional terminal bell.
type ConsoleEmitter struct {
	out  io.Writer
	bell bool
}

func NewConsoleEmitter(out io.Writer, bell bool) *ConsoleEmitter {
	return &ConsoleEmitter{out: out, bell: bell}
}

func (e *ConsoleEmitter) Emit(_ context.Context, n *model.Notification) error {
	border := strings.Repeat("=", 60)
	if _, err := fmt.Fprintf(e.out, "\n%s\n 🔔 Medicine Reminder\n %s\n%s\n\n",
		border, n.Message(), border); err != nil {
		return err
	}
	if e.bell {
		if _, err := fmt.Fprint(e.out, "\a"); err != nil {
			return err
		}
	}
	return nil
}
