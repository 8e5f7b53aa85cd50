package poker

import "fmt"

// Result is the outcome of evaluating a hand of tokens.
type Result struct {
	Cards       []Card // the five resolved cards, ascending weight
	Rank        HandRank
	Substitutes []Substitution
}

// Category is the diagnostic category of the resolved hand.
func (r Result) Category() HandCategory {
	return r.Rank.Category
}

// Tokens returns the resolved cards as tokens, ascending weight.
func (r Result) Tokens() []string {
	return Tokens(r.Cards)
}

// ParseHand splits tokens into concrete cards and jokers, enforcing the
// input contract: 5-7 tokens, no duplicate cards, at most one joker of each
// color. A malformed token yields an *InvalidInputError wrapping the
// *ParseError.
func ParseHand(tokens []string) ([]Card, []Joker, error) {
	if len(tokens) < MinHandSize || len(tokens) > MaxHandSize {
		return nil, nil, invalidInput("hand must have %d to %d cards, got %d", MinHandSize, MaxHandSize, len(tokens))
	}

	var cards []Card
	var jokers []Joker
	for i, token := range tokens {
		if j, ok := ParseJoker(token); ok {
			jokers = append(jokers, j)
			continue
		}
		card, err := ParseCard(token)
		if err != nil {
			return nil, nil, &InvalidInputError{Reason: fmt.Sprintf("token %d", i+1), Err: err}
		}
		cards = append(cards, card)
	}

	if err := validateCards(cards, len(jokers)); err != nil {
		return nil, nil, err
	}
	if err := validateJokers(jokers); err != nil {
		return nil, nil, err
	}
	return cards, jokers, nil
}

// Evaluate resolves the best five card hand from 5-7 tokens, jokers allowed.
func Evaluate(tokens []string) (Result, error) {
	cards, jokers, err := ParseHand(tokens)
	if err != nil {
		return Result{}, err
	}
	hand, err := BestWildHand(cards, jokers)
	if err != nil {
		return Result{}, err
	}
	return Result{Cards: hand.Sorted(), Rank: hand.Rank, Substitutes: hand.Substitutes}, nil
}

// EvaluateBestHand returns the best five tokens from 5-7 concrete card tokens.
// Jokers are rejected.
func EvaluateBestHand(tokens []string) ([]string, error) {
	cards, jokers, err := ParseHand(tokens)
	if err != nil {
		return nil, err
	}
	if len(jokers) > 0 {
		return nil, invalidInput("jokers are not allowed here, got %d", len(jokers))
	}
	hand, err := BestHand(cards)
	if err != nil {
		return nil, err
	}
	return Tokens(hand.Sorted()), nil
}

// EvaluateBestWildHand returns the best five tokens from 5-7 tokens of which
// up to two may be jokers ("?B", "?R"). Jokers are returned as the cards
// they became.
func EvaluateBestWildHand(tokens []string) ([]string, error) {
	result, err := Evaluate(tokens)
	if err != nil {
		return nil, err
	}
	return result.Tokens(), nil
}
