package game

// Card identifies one catalog item: either the path of a photo served under /web/photos,
// or SignatureCard.
type Card string

// SignatureCard is the sentinel catalog item rendered as styled text instead of a photo.
const SignatureCard Card = "SIGNATURE_CARD"

// CatalogSize is the number of unique items, including the signature card.
const CatalogSize = 19

// DeckSize is the number of slots in a deck: every catalog item twice.
const DeckSize = 2 * CatalogSize

var catalog = [CatalogSize]Card{
	"/web/photos/IMG_1217.jpg",
	"/web/photos/IMG_1219.jpg",
	"/web/photos/IMG_1266.jpg",
	"/web/photos/IMG_1298.jpg",
	"/web/photos/IMG_1305.jpg",
	"/web/photos/IMG_1312.jpg",
	"/web/photos/IMG_1316.jpg",
	"/web/photos/IMG_1479.jpg",
	"/web/photos/IMG_1520.jpg",
	"/web/photos/IMG_1530.jpg",
	"/web/photos/IMG_1678.jpg",
	"/web/photos/IMG_0473.jpg",
	"/web/photos/IMG_0516.jpg",
	"/web/photos/IMG_0517.jpg",
	"/web/photos/IMG_0525.jpg",
	"/web/photos/IMG_1211.jpg",
	"/web/photos/IMG_1212.jpg",
	"/web/photos/IMG_1213.jpg",
	SignatureCard,
}

// Catalog returns a copy of the fixed card catalog.
func Catalog() [CatalogSize]Card {
	return catalog
}

// IsSignature reports whether c is the signature card.
func (c Card) IsSignature() bool {
	return c == SignatureCard
}
