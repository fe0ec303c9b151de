package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/models"
)

func newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCommand())
	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var (
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an admin or staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			user, err := database.CreateUser(cmd.Context(), db, args[0], password, models.UserRole(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (id %d)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password for the new account")
	cmd.Flags().StringVarP(&role, "role", "r", string(models.RoleStaff), "Role: admin or staff")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
