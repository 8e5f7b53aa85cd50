package poker

// FullDeck returns all 52 cards ordered by ascending weight.
func FullDeck() []Card {
	cards := make([]Card, 0, numRanks*numSuits)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Hearts; suit++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// ColorCards returns the 26 cards of one color class ordered by ascending
// weight.
func ColorCards(color Color) []Card {
	cards := make([]Card, 0, numRanks*2)
	for _, card := range FullDeck() {
		if card.Color() == color {
			cards = append(cards, card)
		}
	}
	return cards
}
