package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/leads"
)

func init() {
	rootCmd.AddCommand(leadsCmd)
}

var leadsCmd = &cobra.Command{
	Use:   "leads <form>",
	Short: "Export stored lead submissions for a form as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Parse()
		if err != nil {
			return err
		}

		store, err := leads.NewStore(filepath.Join(c.DataDirectory, "leads.db"))
		if err != nil {
			return err
		}
		defer store.Close()

		subs, err := store.All(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(subs)
	},
}
