package poker

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		want     string
		category HandCategory
	}{
		{"flush beats straight", "6C 7C 8C 9C TC 5C JS", "6C 7C 8C 9C TC", StraightFlush},
		{"trips decide full house", "TD TC TH 7C 7D 8C 8S", "8C 8S TC TD TH", FullHouse},
		{"quads beat full house", "JD TC TH 7C 7D 7S 7H", "7C 7D 7H 7S JD", FourOfAKind},
		{"five cards are returned as is", "AS 3D 7H 9C JC", "AS 3D 7H 9C JC", HighCard},
		{"wheel straight", "AD 2C 3H 4S 5S 9D", "AD 2C 3H 4S 5S", Straight},
		{"best kickers kept", "QC QD 9H 5S 2D AH 3C", "QC QD AH 9H 5S", Pair},
		{"two pair from three pairs", "KC KD 4H 4S 7D 7C 2S", "KC KD 7D 7C 4S", TwoPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand, err := BestHand(MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, hand.Rank.Category, hand.String())
			assert.Equal(t, sortedTokens(tt.want), Tokens(hand.Sorted()))
		})
	}
}

func TestBestHandTokensSortedAsStrings(t *testing.T) {
	t.Parallel()
	// The same fixtures expressed as plain string sorted token lists.
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"6C", "7C", "8C", "9C", "TC", "5C", "JS"}, []string{"6C", "7C", "8C", "9C", "TC"}},
		{[]string{"TD", "TC", "TH", "7C", "7D", "8C", "8S"}, []string{"8C", "8S", "TC", "TD", "TH"}},
		{[]string{"JD", "TC", "TH", "7C", "7D", "7S", "7H"}, []string{"7C", "7D", "7H", "7S", "JD"}},
	}
	for _, tt := range tests {
		got, err := EvaluateBestHand(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, slices.Sorted(slices.Values(got)), strings.Join(tt.in, " "))
	}
}

func TestBestHandIsMaximal(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	deck := FullDeck()
	for i := 0; i < 300; i++ {
		perm := rng.Perm(len(deck))
		cards := make([]Card, 7)
		for j := range cards {
			cards[j] = deck[perm[j]]
		}
		hand, err := BestHand(cards)
		require.NoError(t, err)

		forEachSubset(cards, func(five [5]Card) {
			if Classify(five).Compare(hand.Rank) > 0 {
				t.Fatalf("%v: subset %v beats chosen %s", cards, five, hand)
			}
		})
		for _, c := range hand.Cards {
			assert.Contains(t, cards, c)
		}
	}
}

func TestBestHandInputOrder(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("KC KD 4H 4S 7D 7C 2S")
	want, err := BestHand(cards)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(cards)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := BestHand(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want.Cards, got.Cards)
	}
}

func TestBestHandInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards []Card
	}{
		{"empty", nil},
		{"four cards", MustParseCards("AS KS QS JS")},
		{"eight cards", MustParseCards("AS KS QS JS TS 9S 8S 7S")},
		{"duplicate", MustParseCards("AS KS QS JS AS")},
		{"out of range", []Card{{Rank: 13, Suit: Spades}, NewCard(Two, Clubs), NewCard(Three, Clubs), NewCard(Four, Clubs), NewCard(Five, Clubs)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BestHand(tt.cards)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestHandString(t *testing.T) {
	t.Parallel()
	hand, err := BestHand(MustParseCards("TD TC TH 7C 7D 8C 8S"))
	require.NoError(t, err)
	assert.Equal(t, "Full House [8S 8C TC TD TH]", hand.String())
}
