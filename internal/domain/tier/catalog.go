package tier

import "errors"

var ErrInvalidTarget = errors.New("requested tier must be above the current tier")

type Name string

const (
	Standard Name = "STANDARD"
	Bronze   Name = "BRONZE"
	Silver   Name = "SILVER"
	Gold     Name = "GOLD"
	Diamond  Name = "DIAMOND"
)

// Config is one catalog row. MaxLimit is the borrowing ceiling granted to a
// borrower holding the tier; Benefits are informational only.
type Config struct {
	Name     Name
	MinLimit int64
	MaxLimit int64
	Benefits []string
}

// catalog is ordered lowest to highest; index is the tier's rank.
var catalog = []Config{
	{Name: Standard, MinLimit: 1_000_000, MaxLimit: 2_000_000, Benefits: []string{"Ceiling 2M VND", "Approval within 24h"}},
	{Name: Bronze, MinLimit: 1_000_000, MaxLimit: 3_000_000, Benefits: []string{"Ceiling 3M VND", "Priority approval"}},
	{Name: Silver, MinLimit: 1_000_000, MaxLimit: 4_000_000, Benefits: []string{"Ceiling 4M VND", "24/7 support"}},
	{Name: Gold, MinLimit: 1_000_000, MaxLimit: 5_000_000, Benefits: []string{"Ceiling 5M VND", "10% fine discount"}},
	{Name: Diamond, MinLimit: 1_000_000, MaxLimit: 10_000_000, Benefits: []string{"Ceiling 10M VND", "Instant approval"}},
}

// Catalog returns the ordered tier list (lowest first).
func Catalog() []Config {
	out := make([]Config, len(catalog))
	copy(out, catalog)
	return out
}

// Rank returns the position of n in the ordering, or -1 if unknown.
func Rank(n Name) int {
	for i, c := range catalog {
		if c.Name == n {
			return i
		}
	}
	return -1
}

// Lookup returns the catalog entry for n.
func Lookup(n Name) (Config, bool) {
	if i := Rank(n); i >= 0 {
		return catalog[i], true
	}
	return Config{}, false
}

// ByRank returns the catalog entry at rank i; callers must pass a valid rank.
func ByRank(i int) Config { return catalog[i] }

func Count() int { return len(catalog) }

func Lowest() Config  { return catalog[0] }
func Highest() Config { return catalog[len(catalog)-1] }

// Above reports whether a ranks strictly above b.
func Above(a, b Name) bool { return Rank(a) > Rank(b) }
