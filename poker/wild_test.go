package poker

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHand(t testing.TB, s string) ([]Card, []Joker) {
	t.Helper()
	cards, jokers, err := ParseHand(strings.Fields(s))
	require.NoError(t, err, s)
	return cards, jokers
}

func sortedTokens(s string) []string {
	return Tokens(SortCards(MustParseCards(s)))
}

func TestBestWildHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		hand     string
		want     string
		category HandCategory
		key      string
		subs     map[Joker]string
	}{
		{
			name:     "joker completes straight flush",
			hand:     "6C 7C 8C 9C TC 5C ?B",
			want:     "7C 8C 9C TC JC",
			category: StraightFlush,
			key:      "J",
			subs:     map[Joker]string{BlackJoker: "JC"},
		},
		{
			name:     "two jokers make quads",
			hand:     "TD TC 5H 5C 7C ?R ?B",
			want:     "TS TC TD TH 7C",
			category: FourOfAKind,
			key:      "T7",
			subs:     map[Joker]string{BlackJoker: "TS", RedJoker: "TH"},
		},
		{
			name:     "red joker makes trips",
			hand:     "AS AC KD 2H 3C ?R",
			want:     "AS AC AH KD 3C",
			category: ThreeOfAKind,
			key:      "AK3",
			subs:     map[Joker]string{RedJoker: "AH"},
		},
		{
			name:     "both jokers fill a low straight",
			hand:     "2S 3D 4H 9C JC ?B ?R",
			category: Straight,
			key:      "6",
		},
		{
			name:     "both jokers fill broadway",
			hand:     "KH QH JH 2C 3S ?R ?B",
			category: Straight,
			key:      "A",
		},
		{
			name:     "red joker completes heart flush",
			hand:     "AH 9H 7H 2H KC ?R",
			want:     "AH KH 9H 7H 2H",
			category: Flush,
			key:      "AK972",
			subs:     map[Joker]string{RedJoker: "KH"},
		},
		{
			name:     "joker pairs the highest card",
			hand:     "AS KD 9C 5H 3D ?B",
			want:     "AS AC KD 9C 5H",
			category: Pair,
			key:      "AK95",
			subs:     map[Joker]string{BlackJoker: "AC"},
		},
		{
			name:     "joker turns two pair into full house",
			hand:     "QS QD 8C 8H 2S ?R",
			want:     "QS QD QH 8C 8H",
			category: FullHouse,
			key:      "Q8",
			subs:     map[Joker]string{RedJoker: "QH"},
		},
		{
			name:     "jokers and three cards",
			hand:     "?B ?R 7S 8S 9S",
			category: Straight,
			key:      "J",
		},
		{
			name:     "black aces already held",
			hand:     "AS AC AD KH 2C ?B",
			want:     "AS AC AD KC KH",
			category: FullHouse,
			key:      "AK",
			subs:     map[Joker]string{BlackJoker: "KC"},
		},
		{
			name:     "two jokers on a low pair",
			hand:     "5S 5D 9C JD 2H ?R ?B",
			want:     "5S 5C 5D 5H JD",
			category: FourOfAKind,
			key:      "5J",
			subs:     map[Joker]string{BlackJoker: "5C", RedJoker: "5H"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cards, jokers := parseHand(t, tt.hand)
			hand, err := BestWildHand(cards, jokers)
			require.NoError(t, err)

			assert.Equal(t, tt.category, hand.Rank.Category, "%s -> %s", tt.hand, hand)
			assert.Equal(t, ranks(tt.key), hand.Rank.Key, "%s -> %s", tt.hand, hand)
			if tt.want != "" {
				assert.Equal(t, sortedTokens(tt.want), Tokens(hand.Sorted()))
			}
			if tt.subs != nil {
				got := make(map[Joker]string)
				for _, s := range hand.Substitutes {
					got[s.Joker] = s.Card.String()
				}
				assert.Equal(t, tt.subs, got)
			}
			assertWildInvariants(t, cards, jokers, hand)
		})
	}
}

func TestBestWildHandWithoutJokersMatchesBestHand(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	deck := FullDeck()
	for i := 0; i < 200; i++ {
		perm := rng.Perm(len(deck))
		size := MinHandSize + rng.Intn(MaxHandSize-MinHandSize+1)
		cards := make([]Card, size)
		for j := range cards {
			cards[j] = deck[perm[j]]
		}

		plain, err := BestHand(cards)
		require.NoError(t, err)
		wild, err := BestWildHand(cards, nil)
		require.NoError(t, err)
		assert.Equal(t, plain.Cards, wild.Cards, "%v", cards)
		assert.Empty(t, wild.Substitutes)
	}
}

func TestBestWildHandInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		cards  string
		jokers []Joker
	}{
		{"too few", "AS KS QS", []Joker{BlackJoker}},
		{"too many", "AS KS QS JS TS 9S", []Joker{BlackJoker, RedJoker}},
		{"two black jokers", "AS KS QS", []Joker{BlackJoker, BlackJoker}},
		{"three jokers", "AS KS", []Joker{BlackJoker, RedJoker, RedJoker}},
		{"duplicate card", "AS AS QS JS", []Joker{RedJoker}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BestWildHand(MustParseCards(tt.cards), tt.jokers)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// assertWildInvariants checks that a resolved hand only uses held cards and
// legal joker substitutes, and that its rank matches its cards.
func assertWildInvariants(t testing.TB, cards []Card, jokers []Joker, hand Hand) {
	t.Helper()
	fixed := NewCardSet(cards...)
	subs := make(map[Card]Joker)
	seenJoker := make(map[Joker]bool)
	for _, s := range hand.Substitutes {
		assert.True(t, slices.Contains(jokers, s.Joker), "substitute for absent joker %s", s.Joker)
		assert.False(t, seenJoker[s.Joker], "joker %s used twice", s.Joker)
		seenJoker[s.Joker] = true
		assert.Equal(t, s.Joker.Color, s.Card.Color(), "joker %s became %s", s.Joker, s.Card)
		assert.False(t, fixed.Has(s.Card), "joker %s duplicates held card %s", s.Joker, s.Card)
		subs[s.Card] = s.Joker
	}

	var seen CardSet
	for _, c := range hand.Cards {
		assert.False(t, seen.Has(c), "card %s appears twice", c)
		seen = seen.With(c)
		_, isSub := subs[c]
		assert.True(t, fixed.Has(c) || isSub, "card %s is neither held nor a substitute", c)
	}
	for c := range subs {
		assert.True(t, seen.Has(c), "substitute %s not in hand", c)
	}
	assert.Equal(t, 0, Classify(hand.Cards).Compare(hand.Rank))
}

// bruteForceWild tries every legal substitution for every joker and returns
// the strongest rank any of them reaches.
func bruteForceWild(cards []Card, jokers []Joker) HandRank {
	var best HandRank
	found := false
	var assign func(i int, hand []Card, taken CardSet)
	assign = func(i int, hand []Card, taken CardSet) {
		if i == len(jokers) {
			rank := bestSubset(SortCards(hand)).Rank
			if !found || rank.Compare(best) > 0 {
				best, found = rank, true
			}
			return
		}
		for _, c := range jokers[i].Candidates(taken) {
			assign(i+1, append(slices.Clone(hand), c), taken.With(c))
		}
	}
	assign(0, cards, NewCardSet(cards...))
	return best
}

func TestBestWildHandMatchesBruteForce(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	deck := FullDeck()
	iterations := 300
	if testing.Short() {
		iterations = 40
	}

	jokerSets := [][]Joker{{BlackJoker}, {RedJoker}, {BlackJoker, RedJoker}, {RedJoker, BlackJoker}}
	for i := 0; i < iterations; i++ {
		jokers := jokerSets[rng.Intn(len(jokerSets))]
		size := MinHandSize + rng.Intn(MaxHandSize-MinHandSize+1)
		perm := rng.Perm(len(deck))
		cards := make([]Card, size-len(jokers))
		for j := range cards {
			cards[j] = deck[perm[j]]
		}

		hand, err := BestWildHand(cards, jokers)
		require.NoError(t, err)
		want := bruteForceWild(cards, jokers)
		if hand.Rank.Compare(want) != 0 {
			t.Fatalf("%v + %v: got %s, best possible %s", cards, jokers, hand.Rank, want)
		}
		assertWildInvariants(t, cards, jokers, hand)
	}
}

// Crafted hands where a joker could reach several categories at once.
func TestBestWildHandMatchesBruteForceCrafted(t *testing.T) {
	t.Parallel()
	hands := []string{
		"AS KS QS JS ?B",
		"AH KH QH JH ?R ?B",
		"2C 3C 4C 5C 5S ?B",
		"9S 9C 9D 9H ?R ?B",
		"AS AC AD AH KS QS ?R",
		"TS JS QS 2D 2H ?B ?R",
		"7D 7H 8D 8H 9D ?R",
		"AC 2C 3D 4H KS ?B ?R",
		"2H 3H 4H 5H 6H ?R",
		"KC KS QC QS JD JH ?B",
	}
	for _, h := range hands {
		cards, jokers := parseHand(t, h)
		hand, err := BestWildHand(cards, jokers)
		require.NoError(t, err)
		assert.Equal(t, 0, hand.Rank.Compare(bruteForceWild(cards, jokers)), "%s -> %s", h, hand)
		assertWildInvariants(t, cards, jokers, hand)
	}
}

func TestBestWildHandDeterministic(t *testing.T) {
	t.Parallel()
	a, ja := parseHand(t, "TD TC 5H 5C 7C ?R ?B")
	b, jb := parseHand(t, "?B 7C 5C ?R TC 5H TD")
	ha, err := BestWildHand(a, ja)
	require.NoError(t, err)
	hb, err := BestWildHand(b, jb)
	require.NoError(t, err)
	assert.Equal(t, Tokens(ha.Sorted()), Tokens(hb.Sorted()))
}

func BenchmarkBestWildHandTwoJokers(b *testing.B) {
	cards, jokers := parseHand(b, "2S 3D 4H 9C JC ?B ?R")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BestWildHand(cards, jokers)
	}
}

func BenchmarkBestHandSeven(b *testing.B) {
	cards := MustParseCards("AS KD 9C 5H 3D 7S 2C")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BestHand(cards)
	}
}
