package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the API key pool",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured keys with today's usage",
		Run:   runKeysList,
	}

	add := &cobra.Command{
		Use:   "add <key>",
		Short: "Validate a new API key and add it to the pool",
		Long: "Validation issues a real search call against the candidate, so it\n" +
			"costs 100 quota units on success. A key that fails validation for\n" +
			"quota is charged a full day's allowance and not added.",
		Args: cobra.ExactArgs(1),
		Run:  runKeysAdd,
	}

	remove := &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove an API key from the pool",
		Args:  cobra.ExactArgs(1),
		Run:   runKeysRemove,
	}

	test := &cobra.Command{
		Use:   "test <key>",
		Short: "Probe an API key with a minimal call",
		Args:  cobra.ExactArgs(1),
		Run:   runKeysTest,
	}

	rotate := &cobra.Command{
		Use:   "rotate",
		Short: "Rotate to the next working API key",
		Run:   runKeysRotate,
	}

	keysCmd.AddCommand(list, add, remove, test, rotate)
	RootCmd.AddCommand(keysCmd)
}

func runKeysList(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	all := a.keys.Keys()
	if len(all) == 0 {
		fmt.Println("no api keys configured; set YOUTUBE_API_KEY or run `ytmix keys add`")
		return
	}
	active := a.keys.ActiveKey()
	for _, k := range all {
		marker := " "
		if k == active {
			marker = "*"
		}
		st := a.ledger.GetStatus(k)
		fmt.Printf("%s %s  today %d, remaining %d\n", marker, redacted(k), st.Today, st.RemainingToday)
	}
}

func runKeysAdd(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}
	if err := a.keys.Add(cmd.Context(), args[0]); err != nil {
		exitErr("add key", err)
	}
	fmt.Println("key validated and added")
}

func runKeysRemove(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}
	if err := a.keys.Remove(args[0]); err != nil {
		exitErr("remove key", err)
	}
	fmt.Println("key removed")
}

func runKeysTest(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}
	if err := a.keys.Test(cmd.Context(), args[0]); err != nil {
		exitErr("key test failed", err)
	}
	fmt.Println("key is working")
}

func runKeysRotate(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}
	if !a.keys.Rotate(cmd.Context()) {
		exitErr("rotate", fmt.Errorf("no working alternative key found"))
	}
	fmt.Printf("active key is now %s\n", redacted(a.keys.ActiveKey()))
}

// redacted shortens a key for terminal output.
func redacted(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
