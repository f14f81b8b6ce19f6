package restaurants

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/forestxieCode/a2ui"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// imagePool is the fixed set of generic images served under {baseURL}/static/.
// The files are external static assets; the generator only references them.
var imagePool = []string{
	"food_1.png",
	"food_2.png",
	"food_3.png",
	"food_4.png",
}

const (
	filledStar = "★"
	emptyStar  = "☆"
)

// Generator produces synthetic restaurant records for queries the static
// dataset cannot serve. Stateless apart from its random source; determinism
// is neither required nor guaranteed.
type Generator struct {
	baseURL string
	rng     *rand.Rand
}

// NewGenerator creates a Generator. A nil rng gets a time-seeded source;
// tests inject a seeded one and assert shape, never exact values.
func NewGenerator(baseURL string, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		rng:     rng,
	}
}

// Generate produces exactly count synthetic records for the given cuisine
// and location. count <= 0 yields an empty slice.
func (g *Generator) Generate(cuisine, location string, count int) []a2ui.Restaurant {
	records := make([]a2ui.Restaurant, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf("%s Delight #%d", titleCase(cuisine), i)
		records = append(records, a2ui.Restaurant{
			Name:     name,
			Detail:   fmt.Sprintf("A popular spot for %s food, loved by locals in %s.", cuisine, location),
			ImageURL: fmt.Sprintf("%s/static/%s", g.baseURL, imagePool[g.rng.Intn(len(imagePool))]),
			Rating:   starRating(3 + g.rng.Intn(3)),
			InfoLink: fmt.Sprintf("[%s](https://restaurants.example.com/r/%s)", name, gonanoid.Must()),
			Address:  fmt.Sprintf("%d %s Ave, %s", 100+g.rng.Intn(900), location, location),
		})
	}
	return records
}

// starRating renders n filled stars followed by 5-n empty ones.
// n is clamped to [0, 5].
func starRating(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat(filledStar, n) + strings.Repeat(emptyStar, 5-n)
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
