package poker

import (
	"slices"
	"strings"
)

// Rank represents a card rank, Two (0) through Ace (12).
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	numRanks = 13
	numSuits = 4

	rankChars = "23456789TJQKA"
	suitChars = "SCDH"
)

// String returns the token character for the rank (e.g. "T").
func (r Rank) String() string {
	if r > Ace {
		return "?"
	}
	return rankChars[r : r+1]
}

// Suit represents a card suit. The numeric order is the fixed tie-break
// order used by Weight and carries no poker value.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// String returns the token character for the suit (e.g. "C").
func (s Suit) String() string {
	if s > Hearts {
		return "?"
	}
	return suitChars[s : s+1]
}

// Color returns the color class of the suit.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Color is the red/black partition of suits.
type Color uint8

const (
	Black Color = iota
	Red
)

// String returns "black" or "red".
func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Suits returns the two suits of the color class.
func (c Color) Suits() [2]Suit {
	if c == Red {
		return [2]Suit{Diamonds, Hearts}
	}
	return [2]Suit{Spades, Clubs}
}

// Card is a concrete playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two character token of the card (e.g. "TC").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Color returns the color class of the card's suit.
func (c Card) Color() Color {
	return c.Suit.Color()
}

// Weight orders cards by rank, then by the fixed suit order. It exists only
// to give a stable sort; it is not a poker ranking.
func (c Card) Weight() int {
	return 10*int(c.Rank) + int(c.Suit)
}

// index is the card's bit position in a CardSet.
func (c Card) index() uint {
	return uint(c.Suit)*numRanks + uint(c.Rank)
}

// ParseCard parses a two character token such as "AS" or "td".
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, &ParseError{Token: token, Reason: "card token must be 2 characters"}
	}

	rank := strings.IndexByte(rankChars, upper(token[0]))
	if rank < 0 {
		return Card{}, &ParseError{Token: token, Reason: "unknown rank '" + token[:1] + "'"}
	}
	suit := strings.IndexByte(suitChars, upper(token[1]))
	if suit < 0 {
		return Card{}, &ParseError{Token: token, Reason: "unknown suit '" + token[1:] + "'"}
	}

	return NewCard(Rank(rank), Suit(suit)), nil
}

// MustParseCards parses space separated tokens and panics on error (for tests)
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, card)
	}
	return cards
}

// SortCards returns a copy of cards ordered by ascending weight. Duplicates
// are kept.
func SortCards(cards []Card) []Card {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b Card) int {
		return a.Weight() - b.Weight()
	})
	return sorted
}

// Tokens renders cards as their tokens, in the given order.
func Tokens(cards []Card) []string {
	tokens := make([]string, len(cards))
	for i, c := range cards {
		tokens[i] = c.String()
	}
	return tokens
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
