package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/dayboard/pkg/mockapi"
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve a fake GitHub /users API with generated avatars",
	Long: `Serve GET /users, GET /avatars/{login}.png and GET /health.

Point the dashboard at it with DAYBOARD_GITHUB_URL or github.base_url.

Examples:
  dayboard mock-server --addr 127.0.0.1:8089
  dayboard mock-server --delay-per-user 20ms   # slower answers for larger counts`,
	RunE: runMockServer,
}

func init() {
	rootCmd.AddCommand(mockServerCmd)
	mockServerCmd.Flags().String("addr", "127.0.0.1:8089", "listen address")
	mockServerCmd.Flags().Duration("delay-per-user", 0, "delay each /users response by this much per requested user")
}

func runMockServer(cmd *cobra.Command, _ []string) error {
	logger := globals.logger
	addr, _ := cmd.Flags().GetString("addr")
	perUser, _ := cmd.Flags().GetDuration("delay-per-user")

	var opts []mockapi.Option
	if perUser > 0 {
		opts = append(opts, mockapi.WithDelay(func(n int) time.Duration {
			return time.Duration(n) * perUser
		}))
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           mockapi.New(opts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("mock server listening", "addr", addr, "delay_per_user", perUser)

	select {
	case err := <-errCh:
		return fmt.Errorf("mock server: %w", err)
	case <-cmd.Context().Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("mock server stopped")
	return nil
}
