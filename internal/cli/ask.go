package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nubank/unibot/internal/store"
)

func newAskCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reply, _, err := a.service.Exchange(cmd.Context(), store.NewMemoryStore(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			return nil
		},
	}
}
