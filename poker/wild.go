package poker

import (
	"slices"
)

var allSuits = []Suit{Spades, Clubs, Diamonds, Hearts}

// table is the state every category builder starts from. Builders never
// modify it; the cards a joker has become are tracked in a taken set that is
// copied forward with each placement.
type table struct {
	cards  []Card // concrete cards, ascending weight
	fixed  CardSet
	jokers []Joker
}

type builder struct {
	category HandCategory
	build    func(t table) (Hand, bool)
}

// builders holds one strategy per category, strongest first. Each returns the
// strongest hand of its category, so the first success is the best hand.
var builders = []builder{
	{StraightFlush, buildStraightFlush},
	{FourOfAKind, buildGroups(FourOfAKind, 4)},
	{FullHouse, buildGroups(FullHouse, 3, 2)},
	{Flush, buildFlush},
	{Straight, buildStraight},
	{ThreeOfAKind, buildGroups(ThreeOfAKind, 3)},
	{TwoPair, buildGroups(TwoPair, 2, 2)},
	{Pair, buildGroups(Pair, 2)},
	{HighCard, buildGroups(HighCard)},
}

// BestWildHand returns the strongest five card hand that cards plus jokers
// can form. Each joker may become any card of its color that is not already
// in the hand. With no jokers it is identical to BestHand.
func BestWildHand(cards []Card, jokers []Joker) (Hand, error) {
	if err := validateCards(cards, len(jokers)); err != nil {
		return Hand{}, err
	}
	if err := validateJokers(jokers); err != nil {
		return Hand{}, err
	}
	if len(jokers) == 0 {
		return bestSubset(SortCards(cards)), nil
	}

	t := table{
		cards:  SortCards(cards),
		fixed:  NewCardSet(cards...),
		jokers: slices.Clone(jokers),
	}
	for _, b := range builders {
		if hand, ok := b.build(t); ok {
			return hand, nil
		}
	}
	return Hand{}, invalidInput("no five card hand can be formed")
}

func validateJokers(jokers []Joker) error {
	if len(jokers) > 2 {
		return invalidInput("at most 2 jokers allowed, got %d", len(jokers))
	}
	var seen [2]bool
	for _, j := range jokers {
		if j.Color > Red {
			return invalidInput("joker has unknown color %d", j.Color)
		}
		if seen[j.Color] {
			return invalidInput("more than one %s joker", j.Color)
		}
		seen[j.Color] = true
	}
	return nil
}

func buildStraightFlush(t table) (Hand, bool) {
	for high := Ace; high >= Five; high-- {
		for s := len(allSuits) - 1; s >= 0; s-- {
			if hand, ok := t.fillWindow(straightWindow(high), allSuits[s:s+1]); ok {
				return hand, true
			}
		}
	}
	return Hand{}, false
}

func buildStraight(t table) (Hand, bool) {
	for high := Ace; high >= Five; high-- {
		if hand, ok := t.fillWindow(straightWindow(high), allSuits); ok {
			return hand, true
		}
	}
	return Hand{}, false
}

// buildFlush tries every suit. Only the joker of the suit's color can join
// it, and it becomes the highest card of that suit not already held.
func buildFlush(t table) (Hand, bool) {
	var best Hand
	found := false
	for _, suit := range allSuits {
		var cards []Card
		for _, c := range t.cards {
			if c.Suit == suit {
				cards = append(cards, c)
			}
		}

		var sub *Substitution
		for _, j := range t.jokers {
			if j.Color != suit.Color() {
				continue
			}
			for r := int(Ace); r >= int(Two); r-- {
				if card := NewCard(Rank(r), suit); j.CanBe(card, t.fixed) {
					sub = &Substitution{Joker: j, Card: card}
					cards = append(cards, card)
					break
				}
			}
		}
		if len(cards) < 5 {
			continue
		}

		slices.SortFunc(cards, func(a, b Card) int { return b.Weight() - a.Weight() })
		cards = cards[:5]
		var subs []Substitution
		if sub != nil && slices.Contains(cards, sub.Card) {
			subs = []Substitution{*sub}
		}
		hand := newHand(cards, subs)
		if !found || hand.Rank.Compare(best.Rank) > 0 {
			best, found = hand, true
		}
	}
	return best, found
}

// fillWindow places one card of each window rank drawn from suits. Held cards
// are used first and the remaining ranks go to jokers. Every joker order is
// tried and the heaviest completion kept.
func (t table) fillWindow(window [5]Rank, suits []Suit) (Hand, bool) {
	cards := make([]Card, 0, 5)
	var missing []Rank
	for _, r := range window {
		if c, ok := t.heaviestFixed(r, suits); ok {
			cards = append(cards, c)
		} else {
			missing = append(missing, r)
		}
	}
	if len(missing) > len(t.jokers) {
		return Hand{}, false
	}

	var best []Card
	var bestSubs []Substitution
	bestWeight := -1
	for _, order := range jokerOrders(t.jokers) {
		filled := slices.Clone(cards)
		taken := t.fixed
		var subs []Substitution
		ok := true
		for i, r := range missing {
			c, found := order[i].best(r, suits, taken)
			if !found {
				ok = false
				break
			}
			taken = taken.With(c)
			filled = append(filled, c)
			subs = append(subs, Substitution{Joker: order[i], Card: c})
		}
		if !ok {
			continue
		}
		if w := totalWeight(filled); w > bestWeight {
			best, bestSubs, bestWeight = filled, subs, w
		}
	}
	if bestWeight < 0 {
		return Hand{}, false
	}
	return newHand(best, bestSubs), true
}

func (t table) heaviestFixed(rank Rank, suits []Suit) (Card, bool) {
	for i := len(suits) - 1; i >= 0; i-- {
		if card := NewCard(rank, suits[i]); t.fixed.Has(card) {
			return card, true
		}
	}
	return Card{}, false
}

// fixedOfRank returns the held cards of rank, heaviest first.
func (t table) fixedOfRank(rank Rank) []Card {
	var cards []Card
	for i := len(t.cards) - 1; i >= 0; i-- {
		if t.cards[i].Rank == rank {
			cards = append(cards, t.cards[i])
		}
	}
	return cards
}

// partial is a hand under construction by the group builders.
type partial struct {
	cards  []Card
	subs   []Substitution
	taken  CardSet // held cards plus every joker substitute placed so far
	ranks  []Rank  // ranks of the groups placed so far
	jokers []Joker // jokers still free
}

func (p partial) clone() partial {
	return partial{
		cards:  slices.Clone(p.cards),
		subs:   slices.Clone(p.subs),
		taken:  p.taken,
		ranks:  slices.Clone(p.ranks),
		jokers: slices.Clone(p.jokers),
	}
}

// buildGroups builds hands made of same-rank groups of the given sizes plus
// kickers, e.g. (3, 2) for a full house or none for high card.
func buildGroups(category HandCategory, sizes ...int) func(table) (Hand, bool) {
	kickers := 5
	for _, s := range sizes {
		kickers -= s
	}
	return func(t table) (Hand, bool) {
		hand, ok := t.groups(partial{taken: t.fixed, jokers: t.jokers}, sizes, 0, kickers)
		if !ok || hand.Rank.Category < category {
			return Hand{}, false
		}
		return hand, true
	}
}

// groups places group i and recurses. Groups are compared most significant
// first, so the highest rank that can be completed wins; only the joker
// choices at that rank need comparing.
func (t table) groups(p partial, sizes []int, i, kickers int) (Hand, bool) {
	if i == len(sizes) {
		return t.kickers(p, kickers)
	}
	size := sizes[i]

	for r := int(Ace); r >= int(Two); r-- {
		rank := Rank(r)
		if slices.Contains(p.ranks, rank) {
			continue
		}
		// Equal sized groups are keyed high to low.
		if i > 0 && sizes[i-1] == size && rank > p.ranks[i-1] {
			continue
		}

		held := t.fixedOfRank(rank)
		var best Hand
		found := false
		for mask := 0; mask < 1<<len(p.jokers); mask++ {
			use, rest := splitJokers(p.jokers, mask)
			nHeld := size - len(use)
			if nHeld < 0 || nHeld > len(held) {
				continue
			}

			next := p.clone()
			next.cards = append(next.cards, held[:nHeld]...)
			next.ranks = append(next.ranks, rank)
			next.jokers = rest
			ok := true
			for _, j := range use {
				c, placed := j.best(rank, allSuits, next.taken)
				if !placed {
					ok = false
					break
				}
				next.taken = next.taken.With(c)
				next.cards = append(next.cards, c)
				next.subs = append(next.subs, Substitution{Joker: j, Card: c})
			}
			if !ok {
				continue
			}

			hand, ok := t.groups(next, sizes, i+1, kickers)
			if ok && (!found || hand.Rank.Compare(best.Rank) > 0) {
				best, found = hand, true
			}
		}
		if found {
			return best, true
		}
	}
	return Hand{}, false
}

// kickers fills the remaining n slots with cards of distinct ranks outside
// the groups. Free jokers may each become any such rank or stay unused.
func (t table) kickers(p partial, n int) (Hand, bool) {
	var pool []Card
	for _, c := range t.cards {
		if !slices.Contains(p.ranks, c.Rank) {
			pool = append(pool, c)
		}
	}

	var best Hand
	found := false
	var try func(k int, extra []Card, subs []Substitution, taken CardSet)
	try = func(k int, extra []Card, subs []Substitution, taken CardSet) {
		if k == len(p.jokers) {
			hand, ok := pickKickers(p, append(slices.Clone(pool), extra...), subs, n)
			if ok && (!found || hand.Rank.Compare(best.Rank) > 0) {
				best, found = hand, true
			}
			return
		}

		try(k+1, extra, subs, taken)
		j := p.jokers[k]
		for r := int(Ace); r >= int(Two); r-- {
			rank := Rank(r)
			if slices.Contains(p.ranks, rank) {
				continue
			}
			c, ok := j.best(rank, allSuits, taken)
			if !ok {
				continue
			}
			try(k+1,
				append(slices.Clone(extra), c),
				append(slices.Clone(subs), Substitution{Joker: j, Card: c}),
				taken.With(c))
		}
	}
	try(0, nil, nil, p.taken)

	return best, found
}

// pickKickers takes the heaviest candidate of each rank, highest ranks first.
// Substitutions whose card was not picked are dropped.
func pickKickers(p partial, candidates []Card, subs []Substitution, n int) (Hand, bool) {
	slices.SortFunc(candidates, func(a, b Card) int { return b.Weight() - a.Weight() })

	cards := slices.Clone(p.cards)
	var ranks uint16
	var picked CardSet
	for _, c := range candidates {
		if len(cards) == len(p.cards)+n {
			break
		}
		if ranks&(1<<c.Rank) != 0 {
			continue
		}
		ranks |= 1 << c.Rank
		picked = picked.With(c)
		cards = append(cards, c)
	}
	if len(cards) != 5 {
		return Hand{}, false
	}

	used := slices.Clone(p.subs)
	for _, s := range subs {
		if picked.Has(s.Card) {
			used = append(used, s)
		}
	}
	return newHand(cards, used), true
}

// splitJokers partitions jokers by the bits of mask.
func splitJokers(jokers []Joker, mask int) (use, rest []Joker) {
	for i, j := range jokers {
		if mask&(1<<i) != 0 {
			use = append(use, j)
		} else {
			rest = append(rest, j)
		}
	}
	return use, rest
}

// jokerOrders returns every order in which jokers can be handed out.
func jokerOrders(jokers []Joker) [][]Joker {
	if len(jokers) < 2 {
		return [][]Joker{jokers}
	}
	return [][]Joker{
		{jokers[0], jokers[1]},
		{jokers[1], jokers[0]},
	}
}

func totalWeight(cards []Card) int {
	w := 0
	for _, c := range cards {
		w += c.Weight()
	}
	return w
}
