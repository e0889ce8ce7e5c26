package bazi

// TenGod names the relation of a stem to the Day Master (the Day stem).
type TenGod uint8

const (
	Peer             TenGod = iota // same element, same polarity
	RobWealth                      // same element, opposite polarity
	EatingGod                      // Day Master produces it, same polarity
	HurtingOfficer                 // Day Master produces it, opposite polarity
	IndirectWealth                 // Day Master controls it, same polarity
	DirectWealth                   // Day Master controls it, opposite polarity
	SevenKillings                  // it controls the Day Master, same polarity
	DirectOfficer                  // it controls the Day Master, opposite polarity
	IndirectResource               // it produces the Day Master, same polarity
	DirectResource                 // it produces the Day Master, opposite polarity
	tenGodCount
)

var tenGodLabels = [tenGodCount]string{
	"Peer (Parallel)",
	"Rival (Rob Wealth)",
	"Talent (Eating God / Output)",
	"Performer (Hurting Officer)",
	"Indirect Wealth",
	"Direct Wealth",
	"Challenger (Seven Killings)",
	"Authority (Direct Officer)",
	"Inspiration (Indirect Resource)",
	"Nurture (Direct Resource)",
}

var tenGodPinyin = [tenGodCount]string{
	"BiJie", "JieCai", "ShiShen", "ShangGuan", "PianCai",
	"ZhengCai", "QiSha", "ZhengGuan", "PianYin", "ZhengYin",
}

// String returns the English label.
func (g TenGod) String() string {
	if g >= tenGodCount {
		return "TenGod(?)"
	}
	return tenGodLabels[g]
}

// Pinyin returns the traditional name in pinyin.
func (g TenGod) Pinyin() string {
	if g >= tenGodCount {
		return ""
	}
	return tenGodPinyin[g]
}

// TenGodOf returns the relation of other to the Day Master dayMaster.
func TenGodOf(dayMaster, other Stem) TenGod {
	me, it := dayMaster.Element(), other.Element()
	var base TenGod
	switch {
	case it == me:
		base = Peer
	case me.Generates() == it:
		base = EatingGod
	case me.Controls() == it:
		base = IndirectWealth
	case it.Controls() == me:
		base = SevenKillings
	default: // it.Generates() == me
		base = IndirectResource
	}
	if dayMaster.Yang() != other.Yang() {
		base++
	}
	return base
}

// TenGods holds the relation of the Year, Month and Hour stems to the Day
// stem.
type TenGods struct {
	Year  TenGod
	Month TenGod
	Hour  TenGod
}

// TenGodsOf computes the ten gods of a chart's pillars.
func TenGodsOf(p Pillars) TenGods {
	dm := p.Day.Stem()
	return TenGods{
		Year:  TenGodOf(dm, p.Year.Stem()),
		Month: TenGodOf(dm, p.Month.Stem()),
		Hour:  TenGodOf(dm, p.Hour.Stem()),
	}
}
