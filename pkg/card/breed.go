package card

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/pawfetch/pkg/integrations"
)

// breedsMarker precedes the breed segment in Dog CEO image URLs.
const breedsMarker = "/breeds/"

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// BreedFromURL extracts the formatted breed from an image URL of the form
// https://images.dog.ceo/breeds/<breed>/<file>.
//
//	BreedFromURL("https://images.dog.ceo/breeds/retriever-golden/n1.jpg") // "Retriever Golden", nil
func BreedFromURL(imageURL string) (string, error) {
	raw, err := breedSegment(imageURL)
	if err != nil {
		return "", err
	}
	return FormatBreed(raw), nil
}

func breedSegment(imageURL string) (string, error) {
	_, rest, ok := strings.Cut(imageURL, breedsMarker)
	if !ok {
		return "", fmt.Errorf("%w: no breed segment in %q", integrations.ErrMalformed, imageURL)
	}
	segment, _, _ := strings.Cut(rest, "/")
	if segment == "" {
		return "", fmt.Errorf("%w: empty breed segment in %q", integrations.ErrMalformed, imageURL)
	}
	return segment, nil
}

// FormatBreed turns a raw breed segment into a display label.
// Underscores and hyphens become spaces and the first letter of each word
// is upper-cased; the rest of each word is left as is.
//
//	FormatBreed("retriever-golden") // "Retriever Golden"
//	FormatBreed("spaniel_cocker")   // "Spaniel Cocker"
func FormatBreed(raw string) string {
	words := strings.Split(separatorReplacer.Replace(raw), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
