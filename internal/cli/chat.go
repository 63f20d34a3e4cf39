package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nubank/unibot/internal"
	"github.com/nubank/unibot/internal/store"
)

func newChatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return a.runChat(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runChat reads one question per line until EOF or /quit. A bare number picks
// the matching suggested question.
func (a *app) runChat(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	mem := store.NewMemoryStore()
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "🎓 %s\n", internal.Greeting)
	fmt.Fprintln(out, "(/suggest for ideas, /history, /reset, /quit)")
	a.printSuggestions(out)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/suggest":
			a.printSuggestions(out)
			continue
		case "/history":
			for _, m := range mem.All() {
				fmt.Fprintf(out, "[%s] %s\n", m.Role, m.Content)
			}
			continue
		case "/reset":
			mem.Reset()
			fmt.Fprintln(out, "Started a new conversation.")
			continue
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(a.table.Suggestions) {
			line = a.table.Suggestions[n-1]
			fmt.Fprintf(out, "you: %s\n", line)
		}

		reply, topic, err := a.service.Exchange(cmd.Context(), mem, line)
		if err != nil {
			return fmt.Errorf("chat: %w", err)
		}
		a.logger.Debug("answered", "topic", topic, "turns", mem.Len())
		fmt.Fprintf(out, "🤖 %s\n", reply.Content)
	}

	return scanner.Err()
}

func (a *app) printSuggestions(out io.Writer) {
	if len(a.table.Suggestions) == 0 {
		return
	}
	fmt.Fprintln(out, "💡 Suggested questions:")
	for i, q := range a.table.Suggestions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, q)
	}
}
