package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported interview types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range model.KnownTypes() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
