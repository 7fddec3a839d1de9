package commands

import (
	"context"
	"log"

	"freshcart/internal/services"

	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account when none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		created, err := services.NewUserService(store.Users).EnsureAdmin(ctx, adminName, adminEmail, adminPassword)
		if err != nil {
			return err
		}
		if created {
			log.Printf("Created admin account %s", adminEmail)
		} else {
			log.Println("An admin account already exists; nothing created")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "Display name of the admin")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@freshcart.local", "Login email of the admin")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password of the admin (at least 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("password")
}
