package schedule

import (
	"sort"
	"strings"

	"roomly/pkg/model"
)

const (
	maxSuggestions = 10
	maxScore       = 100
)

// Suggestion is a room recommended for a booking request. Only rooms with
// zero conflicting reservations in the requested window are emitted, so
// Available is true by construction.
type Suggestion struct {
	Room       model.Room `json:"room"`
	MatchScore int        `json:"match_score"`
	Available  bool       `json:"available"`
}

// Recommend ranks the rooms able to host desiredCapacity people inside
// window without any conflicting reservation. siteID narrows candidates to
// one site when non-empty. A room missing from reservationsByRoom is
// treated as having no reservations. Results are sorted descending by
// score, ties broken by ascending capacity, truncated to the top 10.
func Recommend(
	desiredCapacity int,
	window Interval,
	siteID string,
	rooms []*model.Room,
	reservationsByRoom map[string][]*model.Reservation,
) ([]Suggestion, error) {
	if desiredCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !window.Valid() {
		return nil, ErrInvalidInterval
	}

	suggestions := make([]Suggestion, 0, len(rooms))
	for _, room := range rooms {
		if !room.IsActive {
			continue
		}
		if siteID != "" && room.SiteID != siteID {
			continue
		}

		conflict, err := FirstConflict(window, reservationsByRoom[room.ID])
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			continue
		}

		score := scoreRoom(room, desiredCapacity)
		if score <= 0 {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Room:       *room,
			MatchScore: score,
			Available:  true,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].MatchScore != suggestions[j].MatchScore {
			return suggestions[i].MatchScore > suggestions[j].MatchScore
		}
		// On equal scores the smaller room wins: less wasted space.
		return suggestions[i].Room.Capacity < suggestions[j].Room.Capacity
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

// scoreRoom computes the match score for an available room, clamped to
// [0, 100]. Capacity is a hard constraint: a room too small scores 0 and is
// never offered.
func scoreRoom(room *model.Room, desired int) int {
	if room.Capacity < desired {
		return 0
	}

	score := capacityScore(room.Capacity, desired)
	score += equipmentBonus(room.Equipment)
	score += bracketBonus(room.Capacity, desired)

	if score > maxScore {
		score = maxScore
	}
	return score
}

func capacityScore(capacity, desired int) int {
	switch {
	case float64(capacity) <= float64(desired)*1.2:
		return 50 // barely big enough, ideal fit
	case float64(capacity) <= float64(desired)*1.5:
		return 35 // slightly large
	default:
		return 20 // oversized
	}
}

func equipmentBonus(tags []string) int {
	bonus := 0
	if hasTag(tags, "wifi") {
		bonus += 15
	}
	if hasTag(tags, "écran") || hasTag(tags, "monitor") {
		bonus += 15
	}
	return bonus
}

func hasTag(tags []string, match string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), match) {
			return true
		}
	}
	return false
}

func bracketBonus(capacity, desired int) int {
	switch {
	case desired <= 4 && capacity <= 8:
		return 10
	case desired > 4 && desired <= 12 && capacity >= 8 && capacity <= 16:
		return 10
	case desired > 12 && capacity >= 16:
		return 10
	}
	return 0
}
