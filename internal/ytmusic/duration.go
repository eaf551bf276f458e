package ytmusic

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration handles the PT#H#M#S form the Data API returns for
// videos. Anything else yields 0.
func parseISO8601Duration(duration string) int {
	match := isoDurationRe.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	var h, m, s int
	if match[1] != "" {
		h, _ = strconv.Atoi(match[1])
	}
	if match[2] != "" {
		m, _ = strconv.Atoi(match[2])
	}
	if match[3] != "" {
		s, _ = strconv.Atoi(match[3])
	}
	return h*3600 + m*60 + s
}

// formatDuration renders seconds the way the YouTube Music UI does: m:ss or h:mm:ss.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
