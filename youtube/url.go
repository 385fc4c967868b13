package youtube

import "strings"

// WatchURL builds a playable URL for a selection of video IDs.
// Zero IDs yield an empty string, one ID a single-video watch link,
// and two or more a batch watch_videos link with the IDs joined in the
// order given. No de-duplication or reordering is applied.
func WatchURL(videoIDs []string) string {
	switch len(videoIDs) {
	case 0:
		return ""
	case 1:
		return "https://www.youtube.com/watch?v=" + videoIDs[0]
	default:
		return "https://www.youtube.com/watch_videos?video_ids=" + strings.Join(videoIDs, ",")
	}
}
