package tui

const ellipsis = "…"

// truncateEnd caps s at limit runes, marking the cut with an ellipsis.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return ellipsis
	}
	return string(runes[:limit-1]) + ellipsis
}

// truncateMiddle caps s at limit runes, cutting out the middle so both
// ends stay visible. Links and file paths read better this way.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return ellipsis
	}
	head := (limit - 1) / 2
	tail := limit - 1 - head
	if head == 0 {
		return ellipsis + string(runes[len(runes)-tail:])
	}
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
