package poker

import "math/bits"

// CardSet is a set of concrete cards stored as a bitset. Bit index is
// suit*13 + rank. Methods return new sets so a CardSet can be shared freely.
type CardSet uint64

// NewCardSet creates a CardSet from cards
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs = cs.With(card)
	}
	return cs
}

// With returns the set plus card.
func (cs CardSet) With(card Card) CardSet {
	return cs | 1<<card.index()
}

// Without returns the set minus card.
func (cs CardSet) Without(card Card) CardSet {
	return cs &^ (1 << card.index())
}

// Union returns the cards present in either set.
func (cs CardSet) Union(other CardSet) CardSet {
	return cs | other
}

// Has checks if a card is in the set
func (cs CardSet) Has(card Card) bool {
	return cs&(1<<card.index()) != 0
}

// Len returns the number of cards in the set.
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// SuitMask returns the ranks present in one suit as a 13-bit mask.
func (cs CardSet) SuitMask(suit Suit) uint16 {
	return uint16(uint64(cs)>>(uint(suit)*numRanks)) & 0x1FFF
}

// RankCount returns how many suits of rank are in the set.
func (cs CardSet) RankCount(rank Rank) int {
	n := 0
	for suit := Spades; suit <= Hearts; suit++ {
		if cs.Has(NewCard(rank, suit)) {
			n++
		}
	}
	return n
}

// Cards returns the members ordered by ascending weight.
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Len())
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Hearts; suit++ {
			if card := NewCard(rank, suit); cs.Has(card) {
				cards = append(cards, card)
			}
		}
	}
	return cards
}
