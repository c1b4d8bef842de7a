package model

import "strings"

// ParseStatus maps a display string to a stored status. It is total: any
// unrecognised input, including the empty string, maps to StatusToRead.
func ParseStatus(s string) BookStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lido":
		return StatusRead
	case "lendo":
		return StatusReading
	case "pausado":
		return StatusPaused
	case "abandonado":
		return StatusAbandoned
	case "quero ler", "não lido":
		return StatusToRead
	default:
		return StatusToRead
	}
}

// StatusLabel is the inverse of ParseStatus for stored values.
func StatusLabel(s BookStatus) string {
	switch s {
	case StatusRead:
		return "Lido"
	case StatusReading:
		return "Lendo"
	case StatusPaused:
		return "Pausado"
	case StatusAbandoned:
		return "Abandonado"
	default:
		return "Quero Ler"
	}
}

var ratings = [...]BookRating{OneStar, TwoStars, ThreeStars, FourStars, FiveStars}

// ParseRating maps 1..5 to a stored rating. Anything else means unrated.
func ParseRating(n int) *BookRating {
	if n < 1 || n > len(ratings) {
		return nil
	}
	r := ratings[n-1]
	return &r
}

// RatingValue returns 1..5 for a stored rating and 0 when unrated.
func RatingValue(r *BookRating) int {
	if r == nil {
		return 0
	}
	for i, v := range ratings {
		if v == *r {
			return i + 1
		}
	}
	return 0
}
