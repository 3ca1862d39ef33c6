package charts

import (
	"html/template"
	"strings"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"github.com/KaramelBytes/studentdash/internal/student"
)

// DefaultAssetsHost serves echarts.min.js for the rendered snippets.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Options controls chart sizing and asset location.
type Options struct {
	Width      string
	Height     string
	AssetsHost string
}

// DefaultOptions matches the dashboard layout: full width, 300px tall.
func DefaultOptions() Options {
	return Options{Width: "100%", Height: "300px", AssetsHost: DefaultAssetsHost}
}

// ScriptURL is the echarts bundle the snippets expect on the page.
func (o Options) ScriptURL() string {
	host := o.AssetsHost
	if host == "" {
		host = DefaultAssetsHost
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return host + opts.EchartsJS
}

type barField struct {
	field string
	color string
}

var barFields = []barField{
	{student.FieldComprehension, "#8884d8"},
	{student.FieldAttention, "#82ca9d"},
	{student.FieldFocus, "#ffc658"},
	{student.FieldRetention, "#ff8042"},
	{student.FieldAssessmentScore, "#0088FE"},
}

func (o Options) init(id string) opts.Initialization {
	return opts.Initialization{Width: o.Width, Height: o.Height, ChartID: id, AssetsHost: o.AssetsHost}
}

// NewBarChart groups five numeric fields per student, one bar series each.
func NewBarChart(records []student.Record, o Options) *echarts.Bar {
	rows := BarSeries(records)
	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithInitializationOpts(o.init("skills_bar")),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		echarts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name())
	}
	bar.SetXAxis(names)
	for _, bf := range barFields {
		data := make([]opts.BarData, 0, len(rows))
		for _, r := range rows {
			data = append(data, opts.BarData{Value: r.Number(bf.field)})
		}
		bar.AddSeries(bf.field, data, echarts.WithItemStyleOpts(opts.ItemStyle{Color: bf.color}))
	}
	return bar
}

// NewScatterChart plots attention (x) against assessment score (y).
func NewScatterChart(records []student.Record, o Options) *echarts.Scatter {
	sc := echarts.NewScatter()
	sc.SetGlobalOptions(
		echarts.WithInitializationOpts(o.init("attention_scatter")),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		echarts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Attention"}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Score"}),
	)
	points := ScatterPoints(records)
	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.ScatterData{Name: p.Name, Value: []float64{p.Attention, p.Score}})
	}
	sc.AddSeries("Students", data, echarts.WithItemStyleOpts(opts.ItemStyle{Color: "#8884d8"}))
	return sc
}

// NewRadarChart draws the profile of the first record on a 0..100 scale.
func NewRadarChart(records []student.Record, o Options) *echarts.Radar {
	profile := RadarProfile(records)
	indicators := make([]*opts.Indicator, 0, len(profile))
	values := make([]float64, 0, len(profile))
	for _, a := range profile {
		indicators = append(indicators, &opts.Indicator{Name: a.Label, Min: 0, Max: 100})
		values = append(values, a.Value)
	}
	name := ProfileName(records)
	rd := echarts.NewRadar()
	rd.SetGlobalOptions(
		echarts.WithInitializationOpts(o.init("profile_radar")),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators, Shape: "polygon"}),
	)
	rd.AddSeries(name, []opts.RadarData{{Name: name, Value: values}},
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: "#8884d8"}),
		echarts.WithAreaStyleOpts(opts.AreaStyle{Color: "#8884d8", Opacity: opts.Float(0.6)}),
	)
	return rd
}

// Snippet is a rendered chart ready to embed in a page.
type Snippet struct {
	Element template.HTML
	Script  template.HTML
}

// Set holds the three dashboard charts.
type Set struct {
	Bar     Snippet
	Scatter Snippet
	Radar   Snippet
	// ScriptURL must be loaded before any snippet script runs.
	ScriptURL string
}

func snippet(s render.ChartSnippet) Snippet {
	return Snippet{Element: template.HTML(s.Element), Script: template.HTML(safeScript(s.Script))}
}

// safeScript rewrites '<' as \u003c inside the script body. go-echarts embeds
// the option JSON without HTML escaping, so record text such as "</script>"
// would otherwise end the element. The body holds no '<' outside JSON strings.
// A script of unexpected shape is dropped.
func safeScript(s string) string {
	s = strings.TrimSpace(s)
	open := strings.Index(s, ">")
	end := strings.LastIndex(s, "</script>")
	if !strings.HasPrefix(s, "<script") || open < 0 || end <= open {
		return ""
	}
	body := strings.ReplaceAll(s[open+1:end], "<", `\u003c`)
	return s[:open+1] + body + s[end:]
}

// Snippets renders all three charts for records.
func Snippets(records []student.Record, o Options) Set {
	return Set{
		Bar:       snippet(NewBarChart(records, o).RenderSnippet()),
		Scatter:   snippet(NewScatterChart(records, o).RenderSnippet()),
		Radar:     snippet(NewRadarChart(records, o).RenderSnippet()),
		ScriptURL: o.ScriptURL(),
	}
}
