/*
Package generate produces the initial arrays that two algorithms race
over.

Every distribution yields n positive values in 1..n. Ascending and
descending arrays are permutations of 1..n; the split distributions
concatenate two monotonic halves; random arrays draw every element
independently and uniformly, so values may repeat.
*/
package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Distribution is the shape of a generated array.
type Distribution int

const (
	Random Distribution = iota
	Ascending
	Descending
	SplitAscending
	SplitDescending
)

var distributionNames = [...]string{
	Random:          "random",
	Ascending:       "ascending",
	Descending:      "descending",
	SplitAscending:  "split-ascending",
	SplitDescending: "split-descending",
}

// ErrUnknownDistribution is returned for unrecognised distribution
// names.
var ErrUnknownDistribution = errors.New("unknown distribution")

// Distributions returns all distributions.
func Distributions() []Distribution {
	ds := make([]Distribution, len(distributionNames))
	for i := range ds {
		ds[i] = Distribution(i)
	}
	return ds
}

// Valid reports whether d is one of the defined distributions.
func (d Distribution) Valid() bool {
	return d >= 0 && int(d) < len(distributionNames)
}

func (d Distribution) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
	return distributionNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Distribution) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Distribution) UnmarshalText(text []byte) error {
	parsed, err := ParseDistribution(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDistribution returns the distribution with the given name.
// "split-asc" and "split-desc" are accepted as aliases.
func ParseDistribution(name string) (Distribution, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "split-asc":
		return SplitAscending, nil
	case "split-desc":
		return SplitDescending, nil
	}
	for i, n := range distributionNames {
		if n == key {
			return Distribution(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDistribution, name)
}

/*
Generate returns n values with distribution d. The random distribution
draws from rng; a nil rng selects the global source.

With h = n/2, split-ascending is 1..h followed by h+1..n, and
split-descending is h..1 followed by n..h+1.
*/
func Generate(n int, d Distribution, rng *rand.Rand) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid element count: %d", n)
	}
	a := make([]int, n)
	h := n / 2
	switch d {
	case Random:
		intn := rand.Intn
		if rng != nil {
			intn = rng.Intn
		}
		for i := range a {
			a[i] = intn(n) + 1
		}
	case Ascending:
		for i := range a {
			a[i] = i + 1
		}
	case Descending:
		for i := range a {
			a[i] = n - i
		}
	case SplitAscending:
		// The two halves join into a single ascending run.
		for i := range a {
			a[i] = i + 1
		}
	case SplitDescending:
		for i := 0; i < h; i++ {
			a[i] = h - i
		}
		for i := h; i < n; i++ {
			a[i] = n - (i - h)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownDistribution, d)
	}
	return a, nil
}
