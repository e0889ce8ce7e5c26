package models

import (
	"time"

	"github.com/charleschoi123/bazi-destiny/bazi"
)

// ChartRequest is the body of POST /api/chart.
type ChartRequest struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	City    string `json:"city"`
	Country string `json:"country"`
	// Timezone optionally overrides the place lookup with an IANA name.
	Timezone string `json:"timezone,omitempty"`
}

// BirthInput converts the request to calculator input.
func (r ChartRequest) BirthInput() bazi.BirthInput {
	return bazi.BirthInput{
		Name:    r.Name,
		Gender:  r.Gender,
		Date:    r.Date,
		Time:    r.Time,
		City:    r.City,
		Country: r.Country,
		Zone:    r.Timezone,
	}
}

// InputView echoes the request with everything the server derived from it.
type InputView struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	City    string `json:"city"`
	Country string `json:"country"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	Timezone         string `json:"timezone"`
	TimezoneSource   string `json:"timezone_source"`
	TimezoneFallback bool   `json:"timezone_fallback"`
	UTCOffset        string `json:"utc_offset"`
	LocalISO         string `json:"local_iso"`
	BeijingISO       string `json:"beijing_iso"`
}

// PillarView is one pillar with its display data.
type PillarView struct {
	Pillar   string `json:"pillar"`
	GZ       string `json:"gz"`
	Index    int    `json:"index"`
	StemCN   string `json:"stem_cn"`
	BranchCN string `json:"branch_cn"`
	StemPY   string `json:"stem_py"`
	BranchPY string `json:"branch_py"`
	StemEl   string `json:"stem_el"`
	BranchEl string `json:"branch_el"`
	Polarity string `json:"polarity"`
}

// TenGodsView labels the Year, Month and Hour stems against the Day stem.
type TenGodsView struct {
	YearStem  string `json:"YearStem"`
	MonthStem string `json:"MonthStem"`
	HourStem  string `json:"HourStem"`
}

// Lucky holds the colors and numbers of the dominant element.
type Lucky struct {
	Colors  []string `json:"colors"`
	Numbers []int    `json:"numbers"`
}

// LuckCycleView is one ten-year luck cycle.
type LuckCycleView struct {
	Index       int    `json:"index"`
	StartAge    int    `json:"start_age"`
	StartMonths int    `json:"start_months"`
	StartYear   int    `json:"start_year"`
	GZ          string `json:"gz"`
}

// ChartResponse is the body of a successful POST /api/chart.
type ChartResponse struct {
	OK            bool            `json:"ok"`
	Input         InputView       `json:"input"`
	Pillars       []PillarView    `json:"pillars"`
	TenGods       TenGodsView     `json:"ten_gods"`
	FiveElements  map[string]int  `json:"five_elements"`
	MainElement   string          `json:"main_element"`
	Lucky         Lucky           `json:"lucky"`
	LuckCycles    []LuckCycleView `json:"luck_cycles"`
	LuckDirection string          `json:"luck_direction,omitempty"`
	Precision     string          `json:"precision"`
	ZiHour        string          `json:"zi_hour"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

var pillarNames = [4]string{"Year", "Month", "Day", "Hour"}

// NewChartResponse renders a computed chart. geo is the geocoded place the
// zone came from, or nil when the gazetteer resolved it.
func NewChartResponse(req ChartRequest, c bazi.Chart, geo *GeocodeEntry) ChartResponse {
	in := InputView{
		Name:             req.Name,
		Gender:           req.Gender,
		City:             req.City,
		Country:          req.Country,
		Timezone:         c.Timezone.Zone,
		TimezoneSource:   string(c.Timezone.Source),
		TimezoneFallback: c.Timezone.Fallback,
		UTCOffset:        c.Timezone.OffsetLabel(),
		LocalISO:         c.Timezone.Local.Format(time.RFC3339),
		BeijingISO:       c.Beijing.String(),
	}
	if geo != nil {
		lat, lon := geo.Lat, geo.Lon
		in.Lat, in.Lon = &lat, &lon
	}

	pillars := make([]PillarView, 0, 4)
	for i, p := range c.Pillars.All() {
		pillars = append(pillars, NewPillarView(pillarNames[i], p))
	}

	luck := make([]LuckCycleView, 0, len(c.Luck))
	for _, l := range c.Luck {
		luck = append(luck, LuckCycleView{
			Index:       l.Number,
			StartAge:    l.StartAge,
			StartMonths: l.StartMonths,
			StartYear:   l.StartYear,
			GZ:          l.Pillar.Chinese(),
		})
	}
	direction := ""
	if len(luck) > 0 {
		direction = "backward"
		if c.LuckForward {
			direction = "forward"
		}
	}

	return ChartResponse{
		OK:      true,
		Input:   in,
		Pillars: pillars,
		TenGods: TenGodsView{
			YearStem:  c.TenGods.Year.String(),
			MonthStem: c.TenGods.Month.String(),
			HourStem:  c.TenGods.Hour.String(),
		},
		FiveElements: c.Elements.Map(),
		MainElement:  c.Dominant.String(),
		Lucky: Lucky{
			Colors:  c.Dominant.LuckyColors(),
			Numbers: c.Dominant.LuckyNumbers(),
		},
		LuckCycles:    luck,
		LuckDirection: direction,
		Precision:     c.Precision.String(),
		ZiHour:        c.ZiHour.String(),
	}
}

// NewPillarView renders one pillar under the given position name.
func NewPillarView(name string, p bazi.Pillar) PillarView {
	polarity := "Yin"
	if p.Stem().Yang() {
		polarity = "Yang"
	}
	return PillarView{
		Pillar:   name,
		GZ:       p.Chinese(),
		Index:    p.Index(),
		StemCN:   p.Stem().Chinese(),
		BranchCN: p.Branch().Chinese(),
		StemPY:   p.Stem().String(),
		BranchPY: p.Branch().String(),
		StemEl:   p.Stem().Element().String(),
		BranchEl: p.Branch().Element().String(),
		Polarity: polarity,
	}
}

// InterpretRequest is the body of POST /api/interpret_stream.
type InterpretRequest struct {
	Chart *ChartResponse `json:"chart"`
	Name  string         `json:"name"`
	// Previous is interpretation text already shown to the user; the model
	// is asked to continue from where it stops.
	Previous string `json:"previous,omitempty"`
}

// StreamFrame is the JSON payload of one server-sent event.
type StreamFrame struct {
	Delta string `json:"delta,omitempty"`
	Error string `json:"error,omitempty"`
}
