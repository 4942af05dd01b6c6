package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrAborted = errors.New("aborted by user")

type PeriodLogClearer interface {
	ClearPeriodLogs(ctx context.Context) error
}

// RunClearPeriodLogsCommand wipes every logged period after an interactive
// confirmation read from in. assumeYes skips the prompt.
func RunClearPeriodLogsCommand(ctx context.Context, profiles PeriodLogClearer, in io.Reader, out io.Writer, assumeYes bool) error {
	if profiles == nil {
		return errors.New("profile store is required")
	}

	if !assumeYes {
		confirmed, err := confirm(in, out, "This removes every logged period. Type \"yes\" to continue: ")
		if err != nil {
			return err
		}
		if !confirmed {
			return ErrAborted
		}
	}

	if err := profiles.ClearPeriodLogs(ctx); err != nil {
		return fmt.Errorf("clear period logs: %w", err)
	}

	fmt.Fprintln(out, "Period logs cleared.")
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if in == nil {
		return false, errors.New("confirmation input unavailable")
	}
	fmt.Fprint(out, prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}
