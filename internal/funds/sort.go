package funds

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByFee orders funds by ascending fee, cheapest first. Funds with an
// unknown fee sort last. Ties are broken by fund name using Swedish
// collation so å/ä/ö order matches what the site shows.
func SortByFee(fs []Fund) {
	coll := collate.New(language.Swedish)
	sort.SliceStable(fs, func(i, j int) bool {
		fi, fj := FeeValue(fs[i].Fee), FeeValue(fs[j].Fee)
		if fi != fj {
			return fi < fj
		}
		return coll.CompareString(fs[i].Name, fs[j].Name) < 0
	})
}

// Dedupe removes funds with duplicate names, keeping the first occurrence.
func Dedupe(fs []Fund) []Fund {
	seen := make(map[string]bool, len(fs))
	out := fs[:0]
	for _, f := range fs {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		out = append(out, f)
	}
	return out
}
