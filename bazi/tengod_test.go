package bazi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenGodOf(t *testing.T) {
	tests := []struct {
		dayMaster Stem
		other     Stem
		want      TenGod
	}{
		{StemJia, StemJia, Peer},
		{StemJia, StemYi, RobWealth},
		{StemJia, StemBing, EatingGod},
		{StemJia, StemDing, HurtingOfficer},
		{StemJia, StemWu, IndirectWealth},
		{StemJia, StemJi, DirectWealth},
		{StemJia, StemGeng, SevenKillings},
		{StemJia, StemXin, DirectOfficer},
		{StemJia, StemRen, IndirectResource},
		{StemJia, StemGui, DirectResource},
		{StemDing, StemGui, SevenKillings},
		{StemDing, StemYi, IndirectResource},
		{StemDing, StemBing, RobWealth},
		{StemGui, StemWu, DirectOfficer},
	}
	for _, tt := range tests {
		got := TenGodOf(tt.dayMaster, tt.other)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.dayMaster, tt.other)
	}
	assert.Equal(t, "Challenger (Seven Killings)", SevenKillings.String())
	assert.Equal(t, "ZhengYin", DirectResource.Pinyin())
}

func TestLuckCycles(t *testing.T) {
	tt := NewTermTable(PrecisionYearly)
	birth := Day{1990, time.May, 15}
	p := Pillars{Year: PillarFromIndex(6), Month: PillarFromIndex(17)} // 庚午, 辛巳

	male, forward, err := LuckCycles(tt, birth, p, GenderMale, 3)
	require.NoError(t, err)
	assert.True(t, forward)
	require.Len(t, male, 3)
	// 22 days to Mangzhong on June 6.
	assert.Equal(t, LuckCycle{Number: 1, StartAge: 7, StartMonths: 4, StartYear: 1997, Pillar: PillarFromIndex(18)}, male[0])
	assert.Equal(t, "癸未", male[1].Pillar.Chinese())
	assert.Equal(t, 27, male[2].StartAge)

	female, forward, err := LuckCycles(tt, birth, p, GenderFemale, 2)
	require.NoError(t, err)
	assert.False(t, forward)
	// 9 days back to Lixia on May 6.
	assert.Equal(t, 3, female[0].StartAge)
	assert.Equal(t, 0, female[0].StartMonths)
	assert.Equal(t, "庚辰", female[0].Pillar.Chinese())
	assert.Equal(t, "己卯", female[1].Pillar.Chinese())

	none, _, err := LuckCycles(tt, birth, p, GenderUnknown, 6)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLuckCyclesAtTableEdge(t *testing.T) {
	tt := NewTermTable(PrecisionYearly)
	p := Pillars{Year: PillarFromIndex(36), Month: PillarFromIndex(12)} // 庚子 year: yang
	_, _, err := LuckCycles(tt, Day{2099, time.December, 20}, p, GenderMale, 6)
	assert.ErrorIs(t, err, ErrSolarTermTableGap)
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, GenderMale, ParseGender(" Male "))
	assert.Equal(t, GenderFemale, ParseGender("f"))
	assert.Equal(t, GenderUnknown, ParseGender(""))
	assert.Equal(t, GenderUnknown, ParseGender("prefer not to say"))
	assert.Equal(t, "female", GenderFemale.String())
}
