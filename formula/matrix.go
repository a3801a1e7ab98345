package formula

import (
	"maps"
	"sort"
)

// Matrix declares a package's configuration space. Require axes always
// apply (platform dimensions like os and arch); Options axes are the
// package's variants; DefaultOptions lists preferred choices for option
// axes, first value winning.
type Matrix struct {
	Require        map[string][]string
	Options        map[string][]string
	DefaultOptions map[string][]string
}

// Combinations returns all cartesian product combinations of the matrix.
// Keys are sorted alphabetically, and combinations are built layer by layer.
// Require fields are joined with "-", then combined with options using "|".
func (m *Matrix) Combinations() []string {
	// Helper function to compute cartesian product for a map
	cartesian := func(kvs map[string][]string) []string {
		if len(kvs) == 0 {
			return nil
		}

		// Sort keys alphabetically
		keys := make([]string, 0, len(kvs))
		for k := range kvs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		// Start with first key's values
		result := make([]string, len(kvs[keys[0]]))
		copy(result, kvs[keys[0]])

		// Combine with subsequent layers using "-"
		for i := 1; i < len(keys); i++ {
			values := kvs[keys[i]]
			newResult := make([]string, 0, len(result)*len(values))
			for _, prev := range result {
				for _, v := range values {
					newResult = append(newResult, prev+"-"+v)
				}
			}
			result = newResult
		}
		return result
	}

	// Compute require combinations
	requireCombos := cartesian(m.Require)

	// Compute options combinations
	optionsCombos := cartesian(m.Options)

	// If no require, just return options
	if len(requireCombos) == 0 {
		return optionsCombos
	}

	// If no options, just return require
	if len(optionsCombos) == 0 {
		return requireCombos
	}

	// Combine require with options using "|"
	result := make([]string, 0, len(requireCombos)*len(optionsCombos))
	for _, req := range requireCombos {
		for _, opt := range optionsCombos {
			result = append(result, req+"|"+opt)
		}
	}

	return result
}

// CombinationCount returns the total number of cartesian product combinations.
func (m *Matrix) CombinationCount() int {
	countPart := func(kvs map[string][]string) int {
		if len(kvs) == 0 {
			return 0
		}
		count := 1
		for _, v := range kvs {
			count *= len(v)
		}
		return count
	}

	requireCount := countPart(m.Require)
	optionsCount := countPart(m.Options)

	if requireCount == 0 {
		return optionsCount
	}
	if optionsCount == 0 {
		return requireCount
	}
	return requireCount * optionsCount
}

// Enumerate returns one axis assignment per combination, merging the
// require and options axes into key/value maps. Keys are sorted and
// expansion is layered, so the order matches Combinations when the key
// sets do not overlap.
func (m *Matrix) Enumerate() []map[string]string {
	all := make(map[string][]string, len(m.Require)+len(m.Options))
	maps.Copy(all, m.Require)
	maps.Copy(all, m.Options)
	if len(all) == 0 {
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []map[string]string{{}}
	for _, k := range keys {
		values := all[k]
		next := make([]map[string]string, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				assignment := maps.Clone(prev)
				assignment[k] = v
				next = append(next, assignment)
			}
		}
		result = next
	}
	return result
}

// Defaults returns the default choice for each option axis that declares
// one: the first value listed in DefaultOptions.
func (m *Matrix) Defaults() map[string]string {
	if len(m.DefaultOptions) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.DefaultOptions))
	for k, vs := range m.DefaultOptions {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
