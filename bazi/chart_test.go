package bazi

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschoi123/bazi-destiny/timezone"
)

// Reference charts, checked by hand against published almanac tables.
var referenceCharts = []struct {
	name     string
	in       BirthInput
	beijing  string
	pillars  [4]string
	counts   ElementCounts
	dominant Element
}{
	{
		name:     "day before Lichun stays in the old year",
		in:       BirthInput{Date: "2024-02-03", Time: "12:00", City: "Shanghai", Country: "China"},
		beijing:  "2024-02-03T12:00:00+08:00",
		pillars:  [4]string{"癸卯", "乙丑", "丁酉", "丙午"},
		counts:   ElementCounts{2, 3, 1, 1, 1},
		dominant: Fire,
	},
	{
		name:     "new york evening lands on Lichun in Beijing",
		in:       BirthInput{Date: "2024-02-03", Time: "11:30", City: "New York", Country: "United States"},
		beijing:  "2024-02-04T00:30:00+08:00",
		pillars:  [4]string{"甲辰", "丙寅", "戊戌", "壬子"},
		counts:   ElementCounts{2, 1, 3, 0, 2},
		dominant: Earth,
	},
	{
		name:     "day before Jingzhe",
		in:       BirthInput{Date: "2024-03-04", Time: "08:00", City: "Beijing", Country: "China"},
		beijing:  "2024-03-04T08:00:00+08:00",
		pillars:  [4]string{"甲辰", "丙寅", "丁卯", "甲辰"},
		counts:   ElementCounts{4, 2, 2, 0, 0},
		dominant: Wood,
	},
	{
		name:     "Jingzhe opens the Mao month",
		in:       BirthInput{Date: "2024-03-05", Time: "08:00", City: "Beijing", Country: "China"},
		beijing:  "2024-03-05T08:00:00+08:00",
		pillars:  [4]string{"甲辰", "丁卯", "戊辰", "丙辰"},
		counts:   ElementCounts{2, 2, 4, 0, 0},
		dominant: Earth,
	},
	{
		name:     "23:30 takes the next day's Zi hour",
		in:       BirthInput{Date: "2023-12-31", Time: "23:30", City: "Hong Kong", Country: "Hong Kong"},
		beijing:  "2023-12-31T23:30:00+08:00",
		pillars:  [4]string{"癸卯", "甲子", "癸亥", "甲子"},
		counts:   ElementCounts{3, 0, 0, 0, 5},
		dominant: Water,
	},
	{
		name:     "millennium midnight",
		in:       BirthInput{Date: "2000-01-01", Time: "00:00", City: "Taipei", Country: "Taiwan"},
		beijing:  "2000-01-01T00:00:00+08:00",
		pillars:  [4]string{"己卯", "丙子", "戊午", "壬子"},
		counts:   ElementCounts{1, 2, 2, 0, 3},
		dominant: Water,
	},
	{
		name:     "london summer time",
		in:       BirthInput{Date: "1990-05-15", Time: "07:30", City: "London", Country: "UK"},
		beijing:  "1990-05-15T14:30:00+08:00",
		pillars:  [4]string{"庚午", "辛巳", "庚辰", "癸未"},
		counts:   ElementCounts{0, 2, 2, 3, 1},
		dominant: Metal,
	},
}

func TestReferenceCharts(t *testing.T) {
	for _, tt := range referenceCharts {
		t.Run(tt.name, func(t *testing.T) {
			chart, err := Compute(tt.in)
			require.NoError(t, err)

			assert.Equal(t, tt.beijing, chart.Beijing.String())
			got := [4]string{}
			for i, p := range chart.Pillars.All() {
				got[i] = p.Chinese()
			}
			assert.Equal(t, tt.pillars, got)
			assert.Equal(t, tt.counts, chart.Elements)
			assert.Equal(t, tt.dominant, chart.Dominant)
			assert.False(t, chart.Timezone.Fallback)
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	in := BirthInput{Name: "Mei", Gender: "female", Date: "1988-08-08", Time: "08:08", City: "Sydney", Country: "Australia"}
	first, err := Compute(in)
	require.NoError(t, err)
	second, err := Compute(in)
	require.NoError(t, err)

	opts := cmp.AllowUnexported(Pillar{}, timezone.BeijingTime{})
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Errorf("Compute not repeatable (-first +second):\n%s", diff)
	}
}

func TestComputeConcurrent(t *testing.T) {
	in := BirthInput{Date: "1975-11-30", Time: "03:15", City: "Paris", Country: "France"}
	want, err := Compute(in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Pillars, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := Compute(in)
			if err == nil {
				results[i] = c.Pillars
			}
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want.Pillars, got)
	}
}

func TestComputeUnknownPlaceFallsBack(t *testing.T) {
	chart, err := Compute(BirthInput{Date: "2024-03-01", Time: "20:00", City: "Atlantis", Country: "Nowhere"})
	require.NoError(t, err)
	assert.True(t, chart.Timezone.Fallback)
	assert.Equal(t, timezone.SourceFallback, chart.Timezone.Source)
	assert.Equal(t, time.Duration(0), chart.Timezone.Offset)
	assert.Equal(t, "2024-03-02T04:00:00+08:00", chart.Beijing.String())
}

func TestComputeResolvedZoneWins(t *testing.T) {
	zone, err := timezone.LoadZone("America/Chicago", timezone.SourceGeocoded)
	require.NoError(t, err)
	chart, err := Compute(BirthInput{
		Date: "2024-01-15", Time: "18:00",
		City: "Springfield", Country: "United States",
		Resolved: zone,
	})
	require.NoError(t, err)
	assert.False(t, chart.Timezone.Fallback)
	assert.Equal(t, timezone.SourceGeocoded, chart.Timezone.Source)
	assert.Equal(t, "2024-01-16T08:00:00+08:00", chart.Beijing.String())
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   BirthInput
		err  error
	}{
		{"missing date", BirthInput{Time: "10:00"}, ErrInvalidDateTime},
		{"bad date", BirthInput{Date: "2024-02-30", Time: "10:00"}, ErrInvalidDateTime},
		{"bad time", BirthInput{Date: "2024-02-10", Time: "25:00"}, ErrInvalidDateTime},
		{"twelve hour clock", BirthInput{Date: "2024-02-10", Time: "7pm"}, ErrInvalidDateTime},
		{"year zero", BirthInput{Date: "0000-06-01", Time: "10:00"}, ErrInvalidDateTime},
		{"before table", BirthInput{Date: "1899-06-01", Time: "10:00", City: "Beijing"}, ErrSolarTermTableGap},
		{"after table", BirthInput{Date: "2100-06-01", Time: "10:00", City: "Beijing"}, ErrSolarTermTableGap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFixedDayPrecisionCoversOldDates(t *testing.T) {
	calc := New(WithPrecision(PrecisionFixedDay))
	chart, err := calc.Compute(BirthInput{Date: "1850-06-01", Time: "10:00", City: "Beijing", Country: "China"})
	require.NoError(t, err)
	assert.Equal(t, PrecisionFixedDay, chart.Precision)
	assert.Equal(t, 8, chart.Elements.Total())
}

func TestPrecisionLevelsDisagreeNearBoundary(t *testing.T) {
	// Lichun 2021 fell on February 3; the fixed table puts it on the 4th.
	in := BirthInput{Date: "2021-02-03", Time: "12:00", City: "Beijing", Country: "China"}
	yearly, err := New().Compute(in)
	require.NoError(t, err)
	fixed, err := New(WithPrecision(PrecisionFixedDay)).Compute(in)
	require.NoError(t, err)
	assert.Equal(t, "辛丑", yearly.Pillars.Year.Chinese())
	assert.Equal(t, "庚子", fixed.Pillars.Year.Chinese())
}

func TestComputeLuckAndTenGods(t *testing.T) {
	chart, err := Compute(BirthInput{Gender: "male", Date: "1990-05-15", Time: "14:30", City: "Shanghai", Country: "China"})
	require.NoError(t, err)
	assert.Equal(t, GenderMale, chart.Gender)
	assert.True(t, chart.LuckForward)
	assert.Len(t, chart.Luck, DefaultLuckCycles)
	assert.Equal(t, TenGods{Year: Peer, Month: RobWealth, Hour: HurtingOfficer}, chart.TenGods)

	none, err := New(WithLuckCycles(0)).Compute(BirthInput{Gender: "male", Date: "1990-05-15", Time: "14:30", City: "Shanghai"})
	require.NoError(t, err)
	assert.Empty(t, none.Luck)
}

func TestAssemble(t *testing.T) {
	p := Pillars{
		Year:  PillarFromIndex(0),
		Month: PillarFromIndex(2),
		Day:   PillarFromIndex(4),
		Hour:  PillarFromIndex(53),
	}
	c := Assemble(timezone.NewBeijingTime(1984, time.February, 4, 10, 0), timezone.Resolution{Zone: "Asia/Shanghai"}, p)
	assert.Equal(t, ElementCounts{2, 3, 2, 0, 1}, c.Elements)
	assert.Equal(t, Fire, c.Dominant)
	assert.Equal(t, p, c.Pillars)
}
