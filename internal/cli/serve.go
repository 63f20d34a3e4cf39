package cli

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/nubank/unibot/internal/server"
	"github.com/nubank/unibot/internal/store"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API for the university page",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, os.Stderr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			if !a.cfg.Debug() {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(server.Config{
				Addr:          a.cfg.Addr(),
				AllowedOrigin: a.cfg.AllowedOrigin,
				Suggestions:   a.table.Suggestions,
			}, a.service, store.NewSessions(
				store.WithIdleTTL(a.cfg.SessionTTL),
				store.WithMaxSessions(a.cfg.MaxSessions),
			), a.logger)
			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
