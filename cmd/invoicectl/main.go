// invoicectl is a small maintenance CLI against a local invoice database:
// record counts and storage usage, and a guarded full reset.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/openinvoice/openinvoice/internal/config"
	"github.com/openinvoice/openinvoice/internal/services"
	"github.com/openinvoice/openinvoice/internal/store"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Maintenance commands for a local OpenInvoice database",
	Long: `invoicectl operates directly on the embedded invoice database used by
the OpenInvoice server. All commands open the database file given with
--db (or DATABASE_PATH).`,
	SilenceUsage: true,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print record counts and estimated storage usage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		for _, name := range st.CollectionNames() {
			rows, err := st.DumpCollection(ctx, name)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %d records\n", name, len(rows))
		}
		usage, err := services.StorageUsage(ctx, st, 0)
		if err != nil {
			return err
		}
		fmt.Printf("storage    %d / %d bytes (%.2f%%)\n",
			usage.UsedBytes, usage.QuotaBytes, usage.Percent)
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every collection (invoices, clients, business, settings)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to clear %s without --yes", dbPath)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("all collections cleared")
		return nil
	},
}

func main() {
	_ = godotenv.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.Load().DatabasePath, "path to the database file")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	rootCmd.AddCommand(statsCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
