package cli

import (
	"fmt"
	"strings"

	"ytmix/search"
	"ytmix/youtube"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a single-term search with explicit ranking and filters",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("order", "o", youtube.OrderRelevance, "Ranking order: relevance, viewCount, date, rating")
	cmd.Flags().String("duration", "", "Duration bucket: short, medium, long")
	cmd.Flags().String("channel", "", "Restrict results to one channel by name")
	cmd.Flags().IntP("max", "m", 25, "Maximum results")
	cmd.Flags().Bool("save", false, "Save the results as a playlist")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	order, _ := cmd.Flags().GetString("order")
	duration, _ := cmd.Flags().GetString("duration")
	channel, _ := cmd.Flags().GetString("channel")
	maxResults, _ := cmd.Flags().GetInt("max")
	save, _ := cmd.Flags().GetBool("save")

	a, err := buildApp()
	if err != nil {
		exitErr("startup", err)
	}

	query := strings.Join(args, " ")
	videos, err := a.engine.AdvancedSearch(cmd.Context(), search.AdvancedOptions{
		Query:      query,
		Order:      order,
		Duration:   duration,
		Channel:    channel,
		MaxResults: maxResults,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(videos) < a.cfg.Search.MinAdHocResults {
		fmt.Printf("only %d videos matched (wanted at least %d); showing what was found\n",
			len(videos), a.cfg.Search.MinAdHocResults)
	}
	for _, v := range videos {
		fmt.Printf("%-12s %7ds %10d views  %s — %s\n",
			v.VideoID, v.DurationSeconds, v.ViewCount, v.Title, v.ChannelTitle)
	}
	if len(videos) == 0 {
		return
	}

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.VideoID
	}
	url := youtube.WatchURL(ids)
	fmt.Println(url)

	if save {
		name := "search-" + strings.ReplaceAll(query, " ", "-")
		if _, err := a.playlists.Save(name, url, ids); err != nil {
			exitErr("save playlist", err)
		}
		fmt.Printf("saved as %q\n", name)
	}
}
