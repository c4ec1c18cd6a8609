package typosquat

import "strings"

// mutation is a transformed name and the family that produced it
type mutation struct {
	value  string
	family Family
}

// familyFunc returns all raw mutations of a normalized name for one family
type familyFunc func(name string) []mutation

// families are evaluated in this order; on collisions the first family wins
var families = []familyFunc{
	omissions,
	doublings,
	transpositions,
	adjacentKeys,
	homoglyphs,
}

// omissions drops each character one at a time
func omissions(name string) []mutation {
	chars := []rune(name)
	results := make([]mutation, 0, len(chars))
	for i := range chars {
		typo := string(chars[:i]) + string(chars[i+1:])
		// a one character name has nothing left to register
		if typo == "" || typo == name {
			continue
		}
		results = append(results, mutation{value: typo, family: FamilyOmission})
	}
	return results
}

// doublings repeats each character in place
func doublings(name string) []mutation {
	chars := []rune(name)
	results := make([]mutation, 0, len(chars))
	for i := range chars {
		typo := string(chars[:i+1]) + string(chars[i:])
		if typo == name {
			continue
		}
		results = append(results, mutation{value: typo, family: FamilyDoubling})
	}
	return results
}

// transpositions swaps every adjacent pair of characters
func transpositions(name string) []mutation {
	chars := []rune(name)
	if len(chars) < 2 {
		return nil
	}
	results := make([]mutation, 0, len(chars)-1)
	for i := 0; i < len(chars)-1; i++ {
		swapped := make([]rune, len(chars))
		copy(swapped, chars)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		typo := string(swapped)
		if typo == name {
			continue
		}
		results = append(results, mutation{value: typo, family: FamilyTransposition})
	}
	return results
}

// adjacentKeys replaces each letter with its QWERTY neighbors
func adjacentKeys(name string) []mutation {
	chars := []rune(name)
	var results []mutation
	for i, ch := range chars {
		for _, neighbor := range qwertyNeighbors[ch] {
			typo := replaceAt(chars, i, neighbor)
			if typo == name {
				continue
			}
			results = append(results, mutation{value: typo, family: FamilyAdjacentKey})
		}
	}
	return results
}

// homoglyphs applies single character look-alikes at every position and
// multi character patterns at every occurrence
func homoglyphs(name string) []mutation {
	chars := []rune(name)
	var results []mutation
	for i, ch := range chars {
		for _, replacement := range singleHomoglyphs[ch] {
			typo := replaceAt(chars, i, replacement)
			if typo == name {
				continue
			}
			results = append(results, mutation{value: typo, family: FamilyHomoglyph})
		}
	}
	for _, p := range patternHomoglyphs {
		for _, idx := range findAll(name, p.pattern) {
			typo := name[:idx] + p.replacement + name[idx+len(p.pattern):]
			if typo == name {
				continue
			}
			results = append(results, mutation{value: typo, family: FamilyHomoglyph})
		}
	}
	return results
}

// findAll returns the start of every occurrence of pattern in s.
// The search resumes one byte past the previous match start so
// overlapping occurrences (ex: `vv` twice in `vvv`) are all reported.
func findAll(s, pattern string) []int {
	if pattern == "" {
		return nil
	}
	var offsets []int
	idx := strings.Index(s, pattern)
	for idx != -1 {
		offsets = append(offsets, idx)
		next := strings.Index(s[idx+1:], pattern)
		if next == -1 {
			break
		}
		idx = idx + 1 + next
	}
	return offsets
}

func replaceAt(chars []rune, i int, r rune) string {
	out := make([]rune, len(chars))
	copy(out, chars)
	out[i] = r
	return string(out)
}
