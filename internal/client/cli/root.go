package cli

import (
	"github.com/spf13/cobra"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/config"
)

// Register flag names.
const (
	flagHardwareID    = "hardware-id"
	flagFirst         = "first"
	flagLast          = "last"
	flagEmail         = "email"
	flagMajor         = "major"
	flagDegree        = "degree"
	flagPasswordStdin = "password-stdin"
)

func (a *App) newRootCmd() *cobra.Command {
	var in registerInput

	root := &cobra.Command{
		Use:   "visitor-register",
		Short: "Register makerspace visitors with the visitor API",
		Long: `visitor-register submits one visitor registration to the makerspace visitor
API and exits with a code describing the outcome:

  0   accepted
  2   rejected or invalid input
  3   already registered
  4   API unreachable after all attempts
  64  usage or configuration error

The password is read from stdin and never accepted as a flag.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRegister(cmd, in)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	config.RegisterFlags(root.PersistentFlags())

	f := root.Flags()
	f.StringVar(&in.hardwareID, flagHardwareID, "", "card reader or tablet identifier")
	f.StringVar(&in.first, flagFirst, "", "first name")
	f.StringVar(&in.last, flagLast, "", "last name")
	f.StringVar(&in.email, flagEmail, "", "email address")
	f.StringVar(&in.major, flagMajor, "", "major")
	f.StringVar(&in.degree, flagDegree, "", "degree type: Bachelors, Masters, Phd, Other")
	f.BoolVar(&in.passwordStdin, flagPasswordStdin, false, "read the password from stdin")
	for _, name := range []string{flagHardwareID, flagFirst, flagLast, flagEmail, flagMajor, flagDegree} {
		_ = root.MarkFlagRequired(name)
	}

	root.AddCommand(a.newListCmd(), a.newSignInCmd(), a.newSignOutCmd(), newVersionCmd())
	return root
}
