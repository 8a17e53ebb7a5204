package cmd

import (
	"log"

	"github.com/jjenkins/boardsite/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the content tables",
	Long:  `Create every table and index the site needs. Existing tables are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		db := connect()
		defer db.Close()

		if err := store.Migrate(ctx, db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Schema is up to date")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
