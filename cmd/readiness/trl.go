package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/readiness/trl"
)

func newTRLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trl",
		Short: "Technology Readiness Level reference",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all TRL levels",
		Run: func(cmd *cobra.Command, args []string) {
			for _, entry := range trl.All() {
				fmt.Printf("TRL %d  %s\n", entry.Level, entry.Description)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <level>",
		Short: "Show the description for one TRL level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := trl.ParseLevel(args[0])
			if err != nil {
				return err
			}

			desc, err := trl.Describe(level)
			if err != nil {
				return err
			}

			fmt.Printf("TRL %d: %s\n", level, desc)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rubric",
		Short: "Print the full TRL rubric as markdown",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(trl.Rubric())
		},
	})

	return cmd
}
