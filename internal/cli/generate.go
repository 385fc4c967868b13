package cli

import (
	"errors"
	"fmt"

	"ytmix/search"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "generate [name]",
		Short: "Generate a smart playlist from trending music searches",
		Args:  cobra.MaximumNArgs(1),
		Run:   runGenerate,
	}

	cmd.Flags().IntP("count", "c", 0, "Target number of videos (default from config)")

	RootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if count, _ := cmd.Flags().GetInt("count"); count > 0 {
		a.cfg.Search.TargetCount = count
		a.engine = rebuildEngine(a)
	}

	result, err := a.engine.GeneratePlaylist(cmd.Context(), name)
	if err != nil {
		var bme *search.BelowMinimumError
		if errors.As(err, &bme) {
			exitErr("generate", fmt.Errorf("only %d fresh videos found (need %d); try again later or widen the filters", bme.Found, bme.Minimum))
		}
		exitErr("generate", err)
	}

	fmt.Printf("playlist %q saved with %d videos\n", result.Name, len(result.Videos))
	fmt.Println(result.URL)
}

// rebuildEngine re-wires the engine after a config override from flags.
func rebuildEngine(a *app) *search.Engine {
	return search.New(a.keys, a.cache, a.ledger, a.used, a.playlists, a.cfg.Search)
}
