package bazi

// CycleLength is the number of terms in the sexagenary cycle.
const CycleLength = 60

// Stem is one of the ten Heavenly Stems, ordered Jia (0) through Gui (9).
type Stem uint8

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
	stemCount
)

var (
	stemPinyin  = [stemCount]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}
	stemChinese = [stemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
)

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s < stemCount }

// Index returns the stem's position in the cycle of ten.
func (s Stem) Index() int { return int(s) }

// String returns the pinyin name of the stem.
func (s Stem) String() string {
	if !s.Valid() {
		return "Stem(?)"
	}
	return stemPinyin[s]
}

// Chinese returns the stem's character.
func (s Stem) Chinese() string {
	if !s.Valid() {
		return ""
	}
	return stemChinese[s]
}

// Yang reports whether the stem is of Yang polarity (even positions).
func (s Stem) Yang() bool { return s%2 == 0 }

// Branch is one of the twelve Earthly Branches, ordered Zi (0) through Hai (11).
type Branch uint8

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
	branchCount
)

var (
	branchPinyin  = [branchCount]string{"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai"}
	branchChinese = [branchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b < branchCount }

// Index returns the branch's position in the cycle of twelve.
func (b Branch) Index() int { return int(b) }

// String returns the pinyin name of the branch.
func (b Branch) String() string {
	if !b.Valid() {
		return "Branch(?)"
	}
	return branchPinyin[b]
}

// Chinese returns the branch's character.
func (b Branch) Chinese() string {
	if !b.Valid() {
		return ""
	}
	return branchChinese[b]
}

// Yang reports whether the branch is of Yang polarity (even positions).
func (b Branch) Yang() bool { return b%2 == 0 }

// Pillar is one stem/branch pair of the sexagenary cycle. It holds only the
// combined index; stem and branch are derived from it, so a Pillar can never
// pair a Yang stem with a Yin branch.
type Pillar struct {
	index uint8
}

// Index returns the pillar's position in the sexagenary cycle, in [0, 60).
func (p Pillar) Index() int { return int(p.index) }

// Stem returns the pillar's Heavenly Stem.
func (p Pillar) Stem() Stem { return StemOf(int(p.index)) }

// Branch returns the pillar's Earthly Branch.
func (p Pillar) Branch() Branch { return BranchOf(int(p.index)) }

// String returns the pinyin label, e.g. "Jia-Zi".
func (p Pillar) String() string { return p.Stem().String() + "-" + p.Branch().String() }

// Chinese returns the two-character label, e.g. "甲子".
func (p Pillar) Chinese() string { return p.Stem().Chinese() + p.Branch().Chinese() }

// mod returns the non-negative remainder of a divided by n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// StemOf returns the stem at cycle position index.
func StemOf(index int) Stem { return Stem(mod(index, int(stemCount))) }

// BranchOf returns the branch at cycle position index.
func BranchOf(index int) Branch { return Branch(mod(index, int(branchCount))) }

// PillarFromIndex returns the pillar at cycle position index. Any integer is
// accepted and reduced mod 60.
func PillarFromIndex(index int) Pillar { return Pillar{index: uint8(mod(index, CycleLength))} }

// NextIndex advances index by delta positions around the sexagenary cycle.
func NextIndex(index, delta int) int { return mod(index+delta, CycleLength) }
