package poker

import (
	"fmt"
	"slices"
	"strings"
)

// HandCategory enumerates the categories of poker hands ordered from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

// String returns a human-readable category name.
func (c HandCategory) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// ParseCategory parses a category name. Case, hyphens and underscores are
// ignored, so "four-of-a-kind" and "Four of a Kind" are equivalent.
func ParseCategory(s string) (HandCategory, error) {
	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s)))
	for c, name := range categoryNames {
		if strings.ToLower(name) == norm {
			return HandCategory(c), nil
		}
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

// HandRank is a category plus the ranks that break ties within it, most
// significant first.
type HandRank struct {
	Category HandCategory
	Key      []Rank
}

// Compare returns -1 if hr is weaker, 0 if equal, 1 if hr is stronger
func (hr HandRank) Compare(other HandRank) int {
	if hr.Category != other.Category {
		if hr.Category < other.Category {
			return -1
		}
		return 1
	}
	return slices.Compare(hr.Key, other.Key)
}

// String returns the category with its tie-break ranks, e.g. "Full House [T 8]".
func (hr HandRank) String() string {
	ranks := make([]string, len(hr.Key))
	for i, r := range hr.Key {
		ranks[i] = r.String()
	}
	return fmt.Sprintf("%s [%s]", hr.Category, strings.Join(ranks, " "))
}

const wheelMask = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five

// Classify computes the rank of exactly five concrete cards.
func Classify(cards [5]Card) HandRank {
	var counts [numRanks]int
	var rankMask uint16
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		rankMask |= 1 << c.Rank
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	// Groups ordered by size, then by rank, both descending. For every
	// category except straights this order is the tie-break key.
	type group struct {
		rank Rank
		size int
	}
	groups := make([]group, 0, 5)
	for r := int(Ace); r >= int(Two); r-- {
		if counts[r] > 0 {
			groups = append(groups, group{rank: Rank(r), size: counts[r]})
		}
	}
	slices.SortStableFunc(groups, func(a, b group) int {
		return b.size - a.size
	})

	key := make([]Rank, len(groups))
	for i, g := range groups {
		key[i] = g.rank
	}

	if high, ok := straightHigh(rankMask); ok && len(groups) == 5 {
		if flush {
			return HandRank{Category: StraightFlush, Key: []Rank{high}}
		}
		return HandRank{Category: Straight, Key: []Rank{high}}
	}

	switch {
	case groups[0].size == 4:
		return HandRank{Category: FourOfAKind, Key: key}
	case groups[0].size == 3 && groups[1].size == 2:
		return HandRank{Category: FullHouse, Key: key}
	case flush:
		return HandRank{Category: Flush, Key: key}
	case groups[0].size == 3:
		return HandRank{Category: ThreeOfAKind, Key: key}
	case groups[0].size == 2 && groups[1].size == 2:
		return HandRank{Category: TwoPair, Key: key}
	case groups[0].size == 2:
		return HandRank{Category: Pair, Key: key}
	default:
		return HandRank{Category: HighCard, Key: key}
	}
}

// straightHigh returns the high card of a five-rank straight mask. The wheel
// (A-2-3-4-5) is five high.
func straightHigh(mask uint16) (Rank, bool) {
	if mask == wheelMask {
		return Five, true
	}
	low := -1
	for r := 0; r < numRanks; r++ {
		if mask&(1<<r) != 0 {
			low = r
			break
		}
	}
	if low < 0 || low+4 > int(Ace) {
		return 0, false
	}
	run := uint16(0x1F) << low
	if mask != run {
		return 0, false
	}
	return Rank(low + 4), true
}

// straightWindow returns the five ranks of the straight ending at high.
func straightWindow(high Rank) [5]Rank {
	if high == Five {
		return [5]Rank{Ace, Two, Three, Four, Five}
	}
	return [5]Rank{high - 4, high - 3, high - 2, high - 1, high}
}
