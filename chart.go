package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charleschoi123/bazi-destiny/config"
	"github.com/charleschoi123/bazi-destiny/geocode"
	"github.com/charleschoi123/bazi-destiny/models"
	"github.com/charleschoi123/bazi-destiny/store"
	"github.com/charleschoi123/bazi-destiny/timezone"
)

var chartOpts struct {
	req       models.ChartRequest
	asJSON    bool
	precision string
	ziHour    string
	geocode   bool
}

// chartCmd computes one chart and prints it.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute a chart from the command line",
	Long: `Computes the four pillars for one birth and prints them as a table,
or as the same JSON document POST /api/chart returns with --json.

Places outside the built-in gazetteer fall back to UTC+0 unless --geocode
is given, which looks them up through Nominatim and caches the result.

Example:
  bazi chart --date 1990-05-15 --time 14:30 --city Shanghai --country China --gender male`,
	RunE: runChart,
}

func init() {
	f := chartCmd.Flags()
	f.StringVar(&chartOpts.req.Date, "date", "", "Birth date, YYYY-MM-DD (required)")
	f.StringVar(&chartOpts.req.Time, "time", "", "Local birth time, HH:MM (required)")
	f.StringVar(&chartOpts.req.City, "city", "", "Birth city")
	f.StringVar(&chartOpts.req.Country, "country", "", "Birth country")
	f.StringVar(&chartOpts.req.Timezone, "zone", "", "IANA zone, overrides the place lookup")
	f.StringVar(&chartOpts.req.Gender, "gender", "", "male or female; enables luck cycles")
	f.StringVar(&chartOpts.req.Name, "name", "", "Name shown in the output")
	f.BoolVar(&chartOpts.asJSON, "json", false, "Print the API JSON instead of a table")
	f.StringVar(&chartOpts.precision, "precision", "", "Solar term precision: yearly or fixed-day (default from config)")
	f.StringVar(&chartOpts.ziHour, "zi-hour", "", "23:00 convention: late or next-day (default from config)")
	f.BoolVar(&chartOpts.geocode, "geocode", false, "Geocode places the gazetteer does not know")
	chartCmd.MarkFlagRequired("date")
	chartCmd.MarkFlagRequired("time")
}

func runChart(cmd *cobra.Command, args []string) error {
	c := *cfg
	if chartOpts.precision != "" {
		c.Chart.Precision = chartOpts.precision
	}
	if chartOpts.ziHour != "" {
		c.Chart.ZiHour = chartOpts.ziHour
	}
	calc, err := newCalculator(&c)
	if err != nil {
		return err
	}

	req := chartOpts.req
	in := req.BirthInput()

	var geo *models.GeocodeEntry
	if chartOpts.geocode && req.Timezone == "" && !(timezone.Resolver{}).Known(req.City, req.Country) {
		geo, err = locate(cmd, &c, req.City, req.Country)
		if err != nil {
			logger.Warn("geocoding failed", zap.String("city", req.City), zap.Error(err))
		} else if z, ok := geocode.Zone(geo); ok {
			in.Resolved = z
		} else {
			geo = nil
		}
	}

	chart, err := calc.Compute(in)
	if err != nil {
		return err
	}
	resp := models.NewChartResponse(req, chart, geo)

	out := cmd.OutOrStdout()
	if chartOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return renderChart(out, resp)
}

func locate(cmd *cobra.Command, c *config.Config, city, country string) (*models.GeocodeEntry, error) {
	s, err := store.New(c.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	c.Geocode.Enabled = true
	return newGeocoder(c, s, logger).Locate(cmd.Context(), city, country)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Faint(true)
	pillarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Align(lipgloss.Center)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderChart prints a chart response as a terminal table.
func renderChart(w io.Writer, resp models.ChartResponse) error {
	var b strings.Builder

	title := "Four Pillars"
	if resp.Input.Name != "" {
		title += " for " + resp.Input.Name
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	fmt.Fprintf(&b, "%s %s (%s, %s)\n", labelStyle.Render("Local:  "), resp.Input.LocalISO, resp.Input.Timezone, resp.Input.UTCOffset)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Beijing:"), resp.Input.BeijingISO)
	if resp.Input.TimezoneFallback {
		b.WriteString(warnStyle.Render("Birth place not found; computed at UTC+0.") + "\n")
	}

	cols := make([]string, 0, len(resp.Pillars))
	for _, p := range resp.Pillars {
		cols = append(cols, pillarStyle.Render(fmt.Sprintf("%s\n%s\n%s-%s\n%s/%s",
			p.Pillar, p.GZ, p.StemPY, p.BranchPY, p.StemEl, p.BranchEl)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n")

	counts := make([]string, 0, 5)
	for _, e := range []string{"Wood", "Fire", "Earth", "Metal", "Water"} {
		counts = append(counts, fmt.Sprintf("%s %d", e, resp.FiveElements[e]))
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Elements:"), strings.Join(counts, ", "))
	fmt.Fprintf(&b, "%s %s (colors: %s; numbers: %s)\n",
		labelStyle.Render("Dominant:"), resp.MainElement,
		strings.Join(resp.Lucky.Colors, ", "), joinInts(resp.Lucky.Numbers))
	fmt.Fprintf(&b, "%s year %s, month %s, hour %s\n", labelStyle.Render("Ten gods:"),
		resp.TenGods.YearStem, resp.TenGods.MonthStem, resp.TenGods.HourStem)

	if len(resp.LuckCycles) > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Luck cycles"), "("+resp.LuckDirection+")")
		for _, l := range resp.LuckCycles {
			fmt.Fprintf(&b, "  %d. %s from age %d (%d)\n", l.Index, l.GZ, l.StartAge, l.StartYear)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinInts(ns []int) string {
	s := make([]string, len(ns))
	for i, n := range ns {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, ", ")
}
