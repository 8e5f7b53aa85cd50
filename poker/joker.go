package poker

// Joker is a wildcard that stands in for any card of its color class.
type Joker struct {
	Color Color
}

var (
	BlackJoker = Joker{Color: Black}
	RedJoker   = Joker{Color: Red}
)

// String returns the joker token, "?B" or "?R".
func (j Joker) String() string {
	if j.Color == Red {
		return "?R"
	}
	return "?B"
}

// ParseJoker recognises a joker token. Lower case color letters are accepted.
func ParseJoker(token string) (Joker, bool) {
	if len(token) != 2 || token[0] != '?' {
		return Joker{}, false
	}
	switch upper(token[1]) {
	case 'B':
		return BlackJoker, true
	case 'R':
		return RedJoker, true
	}
	return Joker{}, false
}

// CanBe reports whether the joker may become card given the cards already
// taken.
func (j Joker) CanBe(card Card, taken CardSet) bool {
	return card.Color() == j.Color && !taken.Has(card)
}

// Candidates returns every card the joker may become given the cards already
// taken, ordered by descending weight.
func (j Joker) Candidates(taken CardSet) []Card {
	all := ColorCards(j.Color)
	cards := make([]Card, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if !taken.Has(all[i]) {
			cards = append(cards, all[i])
		}
	}
	return cards
}

// best returns the heaviest card of rank among suits (ascending) that the
// joker may become.
func (j Joker) best(rank Rank, suits []Suit, taken CardSet) (Card, bool) {
	for i := len(suits) - 1; i >= 0; i-- {
		if card := NewCard(rank, suits[i]); j.CanBe(card, taken) {
			return card, true
		}
	}
	return Card{}, false
}
