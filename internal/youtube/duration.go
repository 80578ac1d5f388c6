package youtube

import (
	"fmt"
	"strconv"
	"strings"
)

// parseISODuration converts an ISO 8601 duration as returned by the videos
// endpoint (e.g. "PT3M12S", "PT1H2M", "PT45S") to milliseconds. Date
// components beyond hours never appear on video durations and are rejected.
func parseISODuration(s string) (int, error) {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok || rest == "" {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var totalSeconds int
	num := ""
	for _, r := range rest {
		if r >= '0' && r <= '9' {
			num += string(r)
			continue
		}

		if num == "" {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		num = ""

		switch r {
		case 'H':
			totalSeconds += n * 3600
		case 'M':
			totalSeconds += n * 60
		case 'S':
			totalSeconds += n
		default:
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}

	if num != "" {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	return totalSeconds * 1000, nil
}
