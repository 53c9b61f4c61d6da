package game

import "strings"

// Card codes arrive from the server with visibility flags in the high
// bits; the low 6 bits identify the card. Identity is always extracted
// with CardID before display or evaluation.

const cardMask = 63

var rankNames = "23456789TJQKA"
var suitNames = "hdcs"

// CardID strips the visibility flags from a card code.
func CardID(code int) int {
	return code & cardMask
}

// CardIDs strips the visibility flags from a sequence of card codes,
// preserving order.
func CardIDs(codes []int) []int {
	ids := make([]int, len(codes))
	for i, c := range codes {
		ids[i] = CardID(c)
	}
	return ids
}

// CardString renders a card code as rank+suit, e.g. "Ah" or "Td".
func CardString(code int) string {
	id := CardID(code)
	rank := id >> 2
	suit := id & 3
	if rank >= len(rankNames) {
		return "??"
	}
	return string(rankNames[rank]) + string(suitNames[suit])
}

// CardsString renders a sequence of card codes, e.g. "Ah Td".
func CardsString(codes []int) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = CardString(c)
	}
	return strings.Join(parts, " ")
}
