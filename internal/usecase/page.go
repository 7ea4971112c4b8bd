package usecase

import (
	"strconv"
	"strings"
)

// ParsePage converts a page query value. Missing, non-numeric or
// non-positive values mean the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
