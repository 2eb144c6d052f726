package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/config"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/common"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

type registerInput struct {
	hardwareID    string
	first         string
	last          string
	email         string
	major         string
	degree        string
	passwordStdin bool
}

func (a *App) runRegister(cmd *cobra.Command, in registerInput) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd.Flags(), a.lookupEnv)
	if err != nil {
		return usageError(err)
	}
	if !in.passwordStdin {
		return usageError(fmt.Errorf("--%s is required", flagPasswordStdin))
	}

	s, err := a.newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	pw, err := ReadPasswordStdin(a.stdin, a.stderr)
	if err != nil {
		return usageError(fmt.Errorf("read password: %w", err))
	}
	// Best effort: the Record below holds its own string copy of the
	// password, which cannot be wiped.
	defer common.WipeByteArray(pw)

	hw, err := visitor.ParseHardwareID(in.hardwareID)
	if err != nil {
		return exitWith(ExitRejected, err)
	}
	rec, err := visitor.NewRecord(in.first, in.last, in.email, in.major, in.degree, string(pw))
	if err != nil {
		return exitWith(ExitRejected, err)
	}

	out, err := s.client.Register(ctx, hw, rec)
	if err != nil {
		if errors.Is(err, visitor.ErrValidation) {
			return exitWith(ExitRejected, err)
		}
		return exitWith(ExitTransportFailure, err)
	}

	fmt.Fprintf(a.stdout, "status=%s message=%q\n", out.Status, out.ServerMessage)
	if out.Err != nil {
		s.log.Debug(ctx, "outcome error", "error", out.Err)
	}
	return exitWith(statusExitCode(out.Status), nil)
}
