package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	playlists := &cobra.Command{
		Use:   "playlists",
		Short: "Manage saved playlists",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved playlists, newest first",
		Run:   runPlaylistsList,
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved playlist and mark it played",
		Args:  cobra.ExactArgs(1),
		Run:   runPlaylistsShow,
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved playlist",
		Args:  cobra.ExactArgs(1),
		Run:   runPlaylistsDelete,
	}

	playlists.AddCommand(list, show, del)
	RootCmd.AddCommand(playlists)
}

func runPlaylistsList(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	names := a.playlists.List()
	if len(names) == 0 {
		fmt.Println("no saved playlists")
		return
	}
	for _, name := range names {
		pl, err := a.playlists.Get(name)
		if err != nil {
			continue
		}
		played := "never played"
		if pl.LastPlayed != nil {
			played = "played " + pl.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("%-30s %3d videos  created %s  %s\n",
			name, len(pl.VideoIDs), pl.CreatedAt.Format("2006-01-02 15:04"), played)
	}
}

func runPlaylistsShow(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	pl, err := a.playlists.Get(args[0])
	if err != nil {
		exitErr("show playlist", err)
	}

	fmt.Printf("%s (%d videos, created %s)\n", args[0], len(pl.VideoIDs), pl.CreatedAt.Format("2006-01-02 15:04"))
	for _, id := range pl.VideoIDs {
		fmt.Println("  " + id)
	}
	fmt.Println(pl.URL)

	if err := a.playlists.MarkPlayed(args[0]); err != nil {
		exitErr("mark played", err)
	}
}

func runPlaylistsDelete(cmd *cobra.Command, args []string) {
	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	if err := a.playlists.Delete(args[0]); err != nil {
		exitErr("delete playlist", err)
	}
	fmt.Printf("deleted %q\n", args[0])
}
