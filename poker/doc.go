// Package poker evaluates five to seven card poker hands, optionally with a
// black joker (any club or spade) and a red joker (any heart or diamond).
//
// Classify ranks exactly five cards. BestHand picks the strongest five card
// subset of concrete cards and BestWildHand resolves jokers into the cards
// that make the strongest hand. The token API (Evaluate, EvaluateBestHand,
// EvaluateBestWildHand) works on two character tokens such as "TD" or "?B".
package poker
