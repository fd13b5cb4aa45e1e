package main

import (
	"github.com/spf13/cobra"

	"github.com/nurpe/fieldops-docs/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.New(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := database.DB(); err == nil {
			defer sqlDB.Close()
		}
		return db.Migrate(database, log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
