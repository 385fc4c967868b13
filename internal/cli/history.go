package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	history := &cobra.Command{
		Use:   "history",
		Short: "Inspect the used-videos ledger",
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Show how many videos have been used",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := buildApp()
			if err != nil {
				exitErr("startup", err)
			}
			fmt.Printf("%d videos in history\n", a.used.Count())
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Forget every used video so all videos are eligible again",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := buildApp()
			if err != nil {
				exitErr("startup", err)
			}
			if err := a.used.Clear(); err != nil {
				exitErr("clear history", err)
			}
			fmt.Println("history cleared")
		},
	}

	history.AddCommand(count, clear)
	RootCmd.AddCommand(history)
}
