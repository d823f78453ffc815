package game

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
)

func TestDeckPairs(t *testing.T) {
	seeds := []int64{0, 1, 7, 42, 1234567}

	for _, seed := range seeds {
		t.Run(fmt.Sprintf("%d", seed), func(t *testing.T) {
			deck := BuildDeck(rand.New(rand.NewSource(seed)))
			if len(deck) != DeckSize {
				t.Fatalf("Seed %d: expected %d slots, got %d", seed, DeckSize, len(deck))
			}

			counts := make(map[Card]int)
			for _, card := range deck {
				counts[card]++
			}
			if len(counts) != CatalogSize {
				t.Errorf("Seed %d: expected %d distinct cards, got %d", seed, CatalogSize, len(counts))
			}
			for _, card := range Catalog() {
				if counts[card] != 2 {
					t.Errorf("Seed %d: expected card %q exactly twice, got %d", seed, card, counts[card])
				}
			}
		})
	}
}

func TestDeckShuffled(t *testing.T) {
	a := BuildDeck(rand.New(rand.NewSource(1)))
	b := BuildDeck(rand.New(rand.NewSource(2)))
	if slices.Equal(a, b) {
		t.Errorf("Expected different seeds to give different orders, got %v twice", a)
	}

	// Same seed, same order.
	c := BuildDeck(rand.New(rand.NewSource(1)))
	if !slices.Equal(a, c) {
		t.Errorf("Expected the same seed to give the same order:\n%v\n%v", a, c)
	}

	if len(NewDeck()) != DeckSize {
		t.Errorf("NewDeck returned the wrong number of slots")
	}
}

func TestCatalog(t *testing.T) {
	cat := Catalog()
	signatures := 0
	for _, card := range cat {
		if card.IsSignature() {
			signatures++
		}
	}
	if signatures != 1 {
		t.Errorf("Expected exactly one signature card in the catalog, got %d", signatures)
	}

	// Catalog returns a copy.
	cat[0] = "changed"
	if Catalog()[0] == "changed" {
		t.Errorf("Catalog should not be modifiable through its return value")
	}
}

func TestLayoutBijection(t *testing.T) {
	layout := HeartLayout()
	seen := make(map[int]bool)
	for row := 0; row < LayoutRows; row++ {
		for col := 0; col < LayoutCols; col++ {
			slot := layout[row][col]
			if slot == Empty {
				continue
			}
			if slot < 0 || slot >= DeckSize {
				t.Errorf("Cell (%d, %d): slot %d out of range", row, col, slot)
			}
			if seen[slot] {
				t.Errorf("Cell (%d, %d): slot %d appears more than once", row, col, slot)
			}
			seen[slot] = true
		}
	}
	if len(seen) != DeckSize {
		t.Errorf("Expected %d playable cells, got %d", DeckSize, len(seen))
	}

	if got := SlotAt(2, 0); got != 11 {
		t.Errorf("SlotAt(2, 0) = %d, want 11", got)
	}
	if got := SlotAt(0, 0); got != Empty {
		t.Errorf("SlotAt(0, 0) = %d, want Empty", got)
	}
	if got := SlotAt(LayoutRows, 0); got != Empty {
		t.Errorf("SlotAt outside of the grid = %d, want Empty", got)
	}
}
