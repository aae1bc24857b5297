package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pumpsz",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pumpsz v%s\n", version.Version)
		fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
