package game

import (
	"fmt"

	poker "github.com/paulhankin/poker"
)

// toLibCard converts a masked card id to the evaluator library's
// representation. Our ranks run 0(=2)..12(=Ace); the library uses
// Ace=1, 2..13 for the rest.
func toLibCard(id int) (poker.Card, error) {
	rank := id >> 2
	if rank > 12 {
		return 0, fmt.Errorf("bad card id %d", id)
	}
	var r poker.Rank
	if rank == 12 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(rank + 2)
	}
	var s poker.Suit
	switch id & 3 {
	case 0:
		s = poker.Heart
	case 1:
		s = poker.Diamond
	case 2:
		s = poker.Club
	default:
		s = poker.Spade
	}
	return poker.MakeCard(s, r)
}

// BestHand describes the best hand makeable from the given card codes
// (hole cards plus board, 5 to 7 cards).
func BestHand(codes []int) (string, error) {
	ids := CardIDs(codes)
	cards := make([]poker.Card, len(ids))
	for i, id := range ids {
		c, err := toLibCard(id)
		if err != nil {
			return "", err
		}
		cards[i] = c
	}
	return poker.Describe(cards)
}
