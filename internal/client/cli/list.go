package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/client"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/config"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

func (a *App) newListCmd() *cobra.Command {
	var start, end int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visits recorded in a time window",
		Long: `list queries the visits whose sign-in and sign-out both fall inside
[--start, --end], given as Unix seconds, and prints them as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(cmd.Flags(), a.lookupEnv)
			if err != nil {
				return usageError(err)
			}
			if !cmd.Flags().Changed("end") {
				end = time.Now().Unix()
			}
			window, err := visitor.NewTimeWindow(time.Unix(start, 0), time.Unix(end, 0))
			if err != nil {
				return exitWith(ExitRejected, err)
			}

			s, err := a.newSession(cfg)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			visits, err := s.client.ListVisits(ctx, window)
			switch {
			case errors.Is(err, client.ErrRejected), errors.Is(err, visitor.ErrValidation):
				return exitWith(ExitRejected, err)
			case err != nil:
				return exitWith(ExitTransportFailure, err)
			}

			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(visits); err != nil {
				return exitWith(ExitTransportFailure, fmt.Errorf("write visits: %w", err))
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&start, "start", 0, "window start, Unix seconds")
	cmd.Flags().Int64Var(&end, "end", 0, "window end, Unix seconds (default now)")
	return cmd
}
