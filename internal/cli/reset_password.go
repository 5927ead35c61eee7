package cli

import (
	"errors"
	"fmt"

	"github.com/msomdec/inkpost/internal/config"
	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/service"
	"github.com/spf13/cobra"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email> <new-password>",
	Short: "Set a new password for an existing account",
	Args:  cobra.ExactArgs(2),
	RunE:  runResetPassword,
}

func init() {
	RootCmd.AddCommand(resetPasswordCmd)
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	email, password := args[0], args[1]

	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := service.NewAuthService(db.Users(), nil, cfg.BcryptCost)
	if err := auth.ResetPassword(cmd.Context(), email, password); err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return fmt.Errorf("password must be 8 to 72 characters")
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("no user with email %s", email)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", email)
	return nil
}
