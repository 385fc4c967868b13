package cli

import (
	"fmt"

	"ytmix/quota"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show per-key quota usage",
		Run:   runQuota,
	}
	RootCmd.AddCommand(cmd)
}

func runQuota(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	keys := a.ledger.Keys()
	if len(keys) == 0 {
		fmt.Println("no quota usage recorded")
		return
	}
	for _, k := range keys {
		st := a.ledger.GetStatus(k)
		fmt.Printf("%s\n", redacted(k))
		fmt.Printf("  today: %d / %d (%d remaining)\n", st.Today, quota.DailyCeiling, st.RemainingToday)
		fmt.Printf("  week:  %d\n", st.Week)
		fmt.Printf("  month: %d\n", st.Month)
	}
}
