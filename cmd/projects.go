package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the available project scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, reg, err := loadEnv()
		if err != nil {
			return err
		}
		for _, id := range reg.IDs() {
			proj, _ := reg.Get(id)
			fmt.Printf("%-20s %-30s %d clips\n", id, proj.Name, len(proj.Clips))
		}
		return nil
	},
}
