package cli

import (
	"errors"
	"fmt"

	"todo-cli/internal/route"

	"github.com/spf13/cobra"
)

// reportUserError prints parse failures the way the command line expects and
// swallows them: bad input is not a failed run. Other errors are returned.
func reportUserError(cmd *cobra.Command, err error) error {
	var usage *route.UsageError
	switch {
	case errors.As(err, &usage):
		fmt.Fprintln(cmd.OutOrStdout(), usage.Usage)
		return nil
	case errors.Is(err, route.ErrInvalidTaskNumber):
		fmt.Fprintln(cmd.OutOrStdout(), "Error: Invalid task number")
		return nil
	default:
		return err
	}
}
