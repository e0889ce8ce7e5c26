package bazi

// Element is one of the Five Elements. The declaration order is also the
// tie-break priority used by Dominant.
type Element uint8

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
	elementCount
)

var elementNames = [elementCount]string{"Wood", "Fire", "Earth", "Metal", "Water"}

// Elements lists the five elements in priority order.
var Elements = [elementCount]Element{Wood, Fire, Earth, Metal, Water}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool { return e < elementCount }

// String returns the English name of the element.
func (e Element) String() string {
	if !e.Valid() {
		return "Element(?)"
	}
	return elementNames[e]
}

// ParseElement returns the element with the given English name.
func ParseElement(name string) (Element, bool) {
	for i, n := range elementNames {
		if n == name {
			return Element(i), true
		}
	}
	return 0, false
}

// Generates returns the element e produces (Wood feeds Fire, and so on).
func (e Element) Generates() Element { return Element(mod(int(e)+1, int(elementCount))) }

// Controls returns the element e overcomes (Wood parts Earth, and so on).
func (e Element) Controls() Element { return Element(mod(int(e)+2, int(elementCount))) }

// Stems pair up per element: Jia/Yi Wood, Bing/Ding Fire, ...
var stemElements = [stemCount]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

var branchElements = [branchCount]Element{
	BranchZi:   Water,
	BranchChou: Earth,
	BranchYin:  Wood,
	BranchMao:  Wood,
	BranchChen: Earth,
	BranchSi:   Fire,
	BranchWu:   Fire,
	BranchWei:  Earth,
	BranchShen: Metal,
	BranchYou:  Metal,
	BranchXu:   Earth,
	BranchHai:  Water,
}

// Element returns the element of the stem.
func (s Stem) Element() Element { return stemElements[mod(int(s), int(stemCount))] }

// Element returns the element of the branch.
func (b Branch) Element() Element { return branchElements[mod(int(b), int(branchCount))] }

// ElementCounts holds the number of stem and branch tokens per element.
type ElementCounts [elementCount]int

// Get returns the count for e.
func (c ElementCounts) Get(e Element) int {
	if !e.Valid() {
		return 0
	}
	return c[e]
}

// Total returns the sum of all counts.
func (c ElementCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Map returns the counts keyed by element name.
func (c ElementCounts) Map() map[string]int {
	m := make(map[string]int, elementCount)
	for _, e := range Elements {
		m[e.String()] = c[e]
	}
	return m
}

// CountElements tallies the element of every stem and branch in pillars.
func CountElements(pillars ...Pillar) ElementCounts {
	var c ElementCounts
	for _, p := range pillars {
		c[p.Stem().Element()]++
		c[p.Branch().Element()]++
	}
	return c
}

// Dominant returns the element with the highest count. Ties go to the element
// declared first (Wood > Fire > Earth > Metal > Water).
func (c ElementCounts) Dominant() Element {
	best := Wood
	for _, e := range Elements[1:] {
		if c[e] > c[best] {
			best = e
		}
	}
	return best
}

var (
	luckyColors = [elementCount][]string{
		Wood:  {"green", "cyan"},
		Fire:  {"red", "orange"},
		Earth: {"yellow", "brown"},
		Metal: {"white", "silver", "gold"},
		Water: {"black", "blue"},
	}
	luckyNumbers = [elementCount][]int{
		Wood:  {3, 8},
		Fire:  {2, 7},
		Earth: {5, 10},
		Metal: {4, 9},
		Water: {1, 6},
	}
)

// LuckyColors returns the colors associated with e.
func (e Element) LuckyColors() []string {
	if !e.Valid() {
		return nil
	}
	return append([]string(nil), luckyColors[e]...)
}

// LuckyNumbers returns the numbers associated with e.
func (e Element) LuckyNumbers() []int {
	if !e.Valid() {
		return nil
	}
	return append([]int(nil), luckyNumbers[e]...)
}
