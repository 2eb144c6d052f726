package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/client"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/config"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

func (a *App) newSignInCmd() *cobra.Command {
	var hardwareID, location string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Record a visitor arriving at a card reader",
		Long: `signin opens a visit for the visitor registered to --hardware-id.
--base-url must point at the device stage (for example https://host/iot).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := visitor.ParseLocation(location)
			if err != nil {
				return exitWith(ExitRejected, err)
			}
			return a.runVisit(cmd, "SignedIn", hardwareID, func(c *client.VisitorClient, hw visitor.HardwareID) error {
				return c.SignIn(cmd.Context(), hw, loc)
			})
		},
	}
	cmd.Flags().StringVar(&hardwareID, flagHardwareID, "", "card reader or tablet identifier")
	cmd.Flags().StringVar(&location, "location", "", "where the visitor signed in")
	_ = cmd.MarkFlagRequired(flagHardwareID)
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func (a *App) newSignOutCmd() *cobra.Command {
	var hardwareID string

	cmd := &cobra.Command{
		Use:   "signout",
		Short: "Close the open visit of a card reader's visitor",
		Long: `signout records the leaving time on the most recent visit of the visitor
registered to --hardware-id. --base-url must point at the device stage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVisit(cmd, "SignedOut", hardwareID, func(c *client.VisitorClient, hw visitor.HardwareID) error {
				return c.SignOut(cmd.Context(), hw)
			})
		},
	}
	cmd.Flags().StringVar(&hardwareID, flagHardwareID, "", "card reader or tablet identifier")
	_ = cmd.MarkFlagRequired(flagHardwareID)
	return cmd
}

func (a *App) runVisit(cmd *cobra.Command, status, hardwareID string, do func(*client.VisitorClient, visitor.HardwareID) error) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd.Flags(), a.lookupEnv)
	if err != nil {
		return usageError(err)
	}
	hw, err := visitor.ParseHardwareID(hardwareID)
	if err != nil {
		return exitWith(ExitRejected, err)
	}

	s, err := a.newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	err = do(s.client, hw)
	switch {
	case err == nil:
		fmt.Fprintf(a.stdout, "status=%s\n", status)
		return nil
	case errors.Is(err, client.ErrRejected), errors.Is(err, visitor.ErrValidation):
		return exitWith(ExitRejected, err)
	}
	return exitWith(ExitTransportFailure, err)
}
