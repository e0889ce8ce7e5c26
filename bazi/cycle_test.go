package bazi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPillarFromIndexParity(t *testing.T) {
	seen := make(map[[2]int]bool)
	for i := -120; i < 180; i++ {
		p := PillarFromIndex(i)
		require.True(t, p.Index() >= 0 && p.Index() < CycleLength, "index %d", i)
		assert.Equal(t, p.Index()%10, p.Stem().Index())
		assert.Equal(t, p.Index()%12, p.Branch().Index())
		assert.Equal(t, p.Stem().Yang(), p.Branch().Yang())
		seen[[2]int{p.Stem().Index(), p.Branch().Index()}] = true
	}
	assert.Len(t, seen, CycleLength)
}

func TestPillarLabels(t *testing.T) {
	tests := []struct {
		index   int
		chinese string
		pinyin  string
	}{
		{0, "甲子", "Jia-Zi"},
		{1, "乙丑", "Yi-Chou"},
		{10, "甲戌", "Jia-Xu"},
		{40, "甲辰", "Jia-Chen"},
		{54, "戊午", "Wu-Wu"},
		{59, "癸亥", "Gui-Hai"},
		{60, "甲子", "Jia-Zi"},
		{-1, "癸亥", "Gui-Hai"},
	}
	for _, tt := range tests {
		p := PillarFromIndex(tt.index)
		assert.Equal(t, tt.chinese, p.Chinese(), "index %d", tt.index)
		assert.Equal(t, tt.pinyin, p.String(), "index %d", tt.index)
	}
}

func TestNextIndex(t *testing.T) {
	assert.Equal(t, 1, NextIndex(0, 1))
	assert.Equal(t, 0, NextIndex(59, 1))
	assert.Equal(t, 59, NextIndex(0, -1))
	assert.Equal(t, 5, NextIndex(5, 600))
	assert.Equal(t, 17, NextIndex(20, -63))
}

func TestStemAndBranchNames(t *testing.T) {
	assert.Equal(t, "Gui", StemGui.String())
	assert.Equal(t, "癸", StemGui.Chinese())
	assert.Equal(t, "Wu", BranchWu.String())
	assert.Equal(t, "午", BranchWu.Chinese())
	assert.False(t, Stem(10).Valid())
	assert.False(t, Branch(12).Valid())
	assert.Equal(t, "Stem(?)", Stem(200).String())
	assert.Equal(t, "", Branch(12).Chinese())
}
