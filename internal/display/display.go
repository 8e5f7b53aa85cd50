// Package display renders evaluated hands for terminals.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	ph "github.com/paulhankin/poker"

	"github.com/lox/wildpoker/internal/batch"
	"github.com/lox/wildpoker/poker"
)

// Card renders a card token colored by its suit color.
func Card(c poker.Card) string {
	if c.Color() == poker.Red {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// Cards renders cards separated by spaces. Cards listed in subs are
// highlighted as joker substitutes.
func Cards(cards []poker.Card, subs []poker.Substitution) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
		for _, s := range subs {
			if s.Card == c {
				parts[i] = SubstituteStyle.Render(c.String())
				break
			}
		}
	}
	return strings.Join(parts, " ")
}

// Substitutes renders joker substitutions as "?B=TS ?R=TH".
func Substitutes(subs []poker.Substitution) string {
	parts := make([]string, len(subs))
	for i, s := range subs {
		parts[i] = fmt.Sprintf("%s=%s", s.Joker, s.Card)
	}
	return strings.Join(parts, " ")
}

// Result renders an evaluation on one line: category, cards and any joker
// substitutions.
func Result(r poker.Result) string {
	var b strings.Builder
	b.WriteString(CategoryStyle.Render(r.Category().String()))
	b.WriteString("  ")
	b.WriteString(Cards(r.Cards, r.Substitutes))
	if len(r.Substitutes) > 0 {
		b.WriteString("  ")
		b.WriteString(InfoStyle.Render("(" + Substitutes(r.Substitutes) + ")"))
	}
	return b.String()
}

// Error renders an error message.
func Error(err error) string {
	return ErrorStyle.Render("Error: " + err.Error())
}

var referenceSuits = map[poker.Suit]ph.Suit{
	poker.Spades:   ph.Spade,
	poker.Clubs:    ph.Club,
	poker.Diamonds: ph.Diamond,
	poker.Hearts:   ph.Heart,
}

// Describe returns a prose description of a resolved hand such as
// "four of a kind, tens". It falls back to the category name when the
// cards cannot be described.
func Describe(r poker.Result) string {
	cards := make([]ph.Card, 0, len(r.Cards))
	for _, c := range r.Cards {
		rank := ph.Rank(c.Rank + 2)
		if c.Rank == poker.Ace {
			rank = 1
		}
		card, err := ph.MakeCard(referenceSuits[c.Suit], rank)
		if err != nil {
			return r.Category().String()
		}
		cards = append(cards, card)
	}
	desc, err := ph.Describe(cards)
	if err != nil || desc == "" {
		return r.Category().String()
	}
	return desc
}

// WriteTable writes one row per evaluated line.
func WriteTable(out io.Writer, results []batch.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, HeaderStyle.Render("LINE")+"\t"+HeaderStyle.Render("INPUT")+"\t"+
		HeaderStyle.Render("BEST")+"\t"+HeaderStyle.Render("CATEGORY")+"\t"+HeaderStyle.Render("JOKERS"))
	for _, l := range results {
		if l.Err != nil {
			fmt.Fprintf(w, "%d\t%s\t%s\t\t\n", l.Line, l.Input, ErrorStyle.Render(l.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			l.Line,
			l.Input,
			strings.Join(l.Result.Tokens(), " "),
			CategoryStyle.Render(l.Result.Category().String()),
			Substitutes(l.Result.Substitutes))
	}
	return w.Flush()
}

// WriteSummary writes per category counts, strongest category first.
func WriteSummary(out io.Writer, s batch.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, HeaderStyle.Render("CATEGORY")+"\t"+HeaderStyle.Render("HANDS")+"\t"+HeaderStyle.Render("SHARE"))
	evaluated := s.Total - s.Failed
	for c := poker.StraightFlush; ; c-- {
		if n := s.Categories[c]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", CategoryStyle.Render(c.String()), n, 100*float64(n)/float64(evaluated))
		}
		if c == poker.HighCard {
			break
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, InfoStyle.Render(fmt.Sprintf("%d hands, %d failed, %s", s.Total, s.Failed, s.Elapsed.Round(time.Microsecond))))
	return err
}
