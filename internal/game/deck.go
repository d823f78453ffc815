package game

import (
	"math/rand"
	"time"
)

// Deck is the shuffled sequence of slots of one session.
// Each slot holds a catalog Card, and every card appears in exactly two slots.
type Deck []Card

// NewDeck builds a freshly shuffled deck, seeded from the current time.
func NewDeck() Deck {
	return BuildDeck(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// BuildDeck duplicates every catalog entry and shuffles the result with rng.
func BuildDeck(rng *rand.Rand) Deck {
	deck := make(Deck, 0, DeckSize)
	for _, card := range catalog {
		deck = append(deck, card, card)
	}

	// Fisher-Yates: swap each position, from the last down to 1,
	// with a uniformly chosen position at or before it.
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// Pairs reports whether slots a and b hold the same card.
func (d Deck) Pairs(a, b int) bool {
	return a != b && d[a] == d[b]
}

// Valid reports whether slot is an index into the deck.
func (d Deck) Valid(slot int) bool {
	return slot >= 0 && slot < len(d)
}
