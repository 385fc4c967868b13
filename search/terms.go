package search

// trendingTerms is the fixed vocabulary smart searches sample from.
var trendingTerms = []string{
	"music", "songs", "playlist", "hits", "top songs", "popular music",
	"pop music", "hip hop", "electronic music", "dance music",
	"r&b music", "country music", "indie music", "alternative music",
	"music 2024", "music 2023", "music 2022", "classic songs", "oldies",
	"remix", "cover songs", "performance",
}

// musicIndicators are generic title terms that mark a video as music
// content when none of the configured include keywords match.
var musicIndicators = []string{
	"music", "song", "audio", "track", "hit", "mix",
	"official", "video", "cover", "remix", "live", "acoustic",
}

// searchOrders are the ranking orders each term is queried under.
var searchOrders = []string{"relevance", "viewCount", "date", "rating"}
