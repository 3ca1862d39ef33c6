package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/KaramelBytes/studentdash/internal/analysis"
	"github.com/KaramelBytes/studentdash/internal/charts"
	"github.com/KaramelBytes/studentdash/internal/dashboard"
	"github.com/KaramelBytes/studentdash/internal/predict"
	"github.com/KaramelBytes/studentdash/internal/table"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OverviewResponse is the body of GET /api/overview.
type OverviewResponse struct {
	Total  int             `json:"total"`
	Stats  []analysis.Stat `json:"stats"`
	Loaded bool            `json:"loaded"`
	Error  string          `json:"error,omitempty"`
}

func OverviewHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs := d.Records()
		resp := OverviewResponse{
			Total:  len(recs),
			Stats:  analysis.Summarize(recs).Stats,
			Loaded: d.Loaded(),
		}
		if d.Err() != nil {
			resp.Error = "data unavailable"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// StudentsHandler returns the filtered and sorted table rows. State comes from
// the q, sort and order query parameters.
func StudentsHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		key, err := table.ParseKey(q.Get("sort"))
		if err != nil {
			http.Error(w, "unknown column", http.StatusBadRequest)
			return
		}
		order, err := table.ParseOrder(q.Get("order"))
		if err != nil {
			http.Error(w, "bad order", http.StatusBadRequest)
			return
		}
		rows := table.View(d.Records(), table.State{Search: q.Get("q"), SortKey: key, SortOrder: order})
		writeJSON(w, http.StatusOK, rows)
	}
}

// RadarResponse is the body of GET /api/charts/radar.
type RadarResponse struct {
	Name string        `json:"name"`
	Axes []charts.Axis `json:"axes"`
}

func RadarHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs := d.Records()
		writeJSON(w, http.StatusOK, RadarResponse{Name: charts.ProfileName(recs), Axes: charts.RadarProfile(recs)})
	}
}

func ScatterHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, charts.ScatterPoints(d.Records()))
	}
}

// PredictResponse is the body of POST /api/predict.
type PredictResponse struct {
	Inputs    predict.Inputs `json:"inputs"`
	Predicted float64        `json:"predicted"`
}

// PredictHandler scores the JSON inputs. Values may be numbers or strings;
// missing or invalid values count as 0.
func PredictHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var in predict.Inputs
		for _, f := range predict.Fields {
			switch v := body[f].(type) {
			case string:
				in.Set(f, v)
			case float64:
				in.Set(f, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		writeJSON(w, http.StatusOK, PredictResponse{Inputs: in, Predicted: in.Predict()})
	}
}
