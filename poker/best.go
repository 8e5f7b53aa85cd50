package poker

const (
	MinHandSize = 5
	MaxHandSize = 7
)

// Hand is a resolved five card hand with its rank. Substitutes lists the
// jokers that were used and the cards they became.
type Hand struct {
	Cards       [5]Card
	Rank        HandRank
	Substitutes []Substitution
}

// Substitution records the concrete card a joker was resolved to.
type Substitution struct {
	Joker Joker
	Card  Card
}

func newHand(cards []Card, subs []Substitution) Hand {
	var five [5]Card
	copy(five[:], cards)
	return Hand{Cards: five, Rank: Classify(five), Substitutes: subs}
}

// Sorted returns the hand's cards ordered by ascending weight.
func (h Hand) Sorted() []Card {
	return SortCards(h.Cards[:])
}

// String returns a string representation of the hand
func (h Hand) String() string {
	s := h.Rank.Category.String() + " ["
	for i, c := range h.Sorted() {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s + "]"
}

// BestHand returns the strongest five card subset of 5-7 concrete cards.
// Subsets are enumerated in a fixed order over the weight-sorted input and
// the first maximal subset wins.
func BestHand(cards []Card) (Hand, error) {
	if err := validateCards(cards, 0); err != nil {
		return Hand{}, err
	}
	return bestSubset(SortCards(cards)), nil
}

// bestSubset assumes 5-7 distinct cards.
func bestSubset(cards []Card) Hand {
	var best Hand
	found := false
	forEachSubset(cards, func(five [5]Card) {
		rank := Classify(five)
		if !found || rank.Compare(best.Rank) > 0 {
			best = Hand{Cards: five, Rank: rank}
			found = true
		}
	})
	return best
}

// forEachSubset calls fn for every five card subset in lexicographic index order.
func forEachSubset(cards []Card, fn func([5]Card)) {
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						fn([5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]})
					}
				}
			}
		}
	}
}

// validateCards enforces the hand size and uniqueness contract for cards
// plus jokers wildcards.
func validateCards(cards []Card, jokers int) error {
	total := len(cards) + jokers
	if total < MinHandSize || total > MaxHandSize {
		return invalidInput("hand must have %d to %d cards, got %d", MinHandSize, MaxHandSize, total)
	}
	var seen CardSet
	for _, c := range cards {
		if c.Rank > Ace || c.Suit > Hearts {
			return invalidInput("card %v out of range", c)
		}
		if seen.Has(c) {
			return invalidInput("duplicate card %s", c)
		}
		seen = seen.With(c)
	}
	return nil
}
