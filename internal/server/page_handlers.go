package server

import (
	"bytes"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KaramelBytes/studentdash/internal/dashboard"
	"github.com/KaramelBytes/studentdash/internal/parser"
	"github.com/KaramelBytes/studentdash/internal/predict"
	"github.com/KaramelBytes/studentdash/internal/table"
)

// SessionCookie carries the visitor's session id.
const SessionCookie = "studentdash_session"

// lookup returns the visitor's live session id, if the request carries one.
func lookup(d *dashboard.Dashboard, r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	if _, ok := d.Sessions.Get(c.Value); !ok {
		return "", false
	}
	return c.Value, true
}

// session returns the visitor's session id, issuing a cookie for new or
// unknown visitors. Only handlers that change state call it.
func session(d *dashboard.Dashboard, w http.ResponseWriter, r *http.Request) string {
	if id, ok := lookup(d, r); ok {
		return id
	}
	id := d.Sessions.New()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// PageHandler renders the dashboard. A q query parameter replaces the
// session's search text; visitors without state get the default view and no
// session.
func PageHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var st dashboard.UIState
		q, hasQ := r.URL.Query()["q"]
		id, ok := lookup(d, r)
		switch {
		case hasQ && len(q) > 0 && (ok || q[0] != ""):
			if !ok {
				id = session(d, w, r)
			}
			st = d.Sessions.Update(id, func(u dashboard.UIState) dashboard.UIState {
				u.Table.Search = q[0]
				return u
			})
		case ok:
			st, _ = d.Sessions.Get(id)
		}
		var buf bytes.Buffer
		if err := dashboard.Render(&buf, d.Build(st)); err != nil {
			log.Printf("render dashboard: %v", err)
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// SortHandler toggles the session's sort on a column and returns to the page.
func SortHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := table.ParseKey(chi.URLParam(r, "key"))
		if err != nil || key == "" {
			http.Error(w, "unknown column", http.StatusBadRequest)
			return
		}
		id := session(d, w, r)
		d.Sessions.Update(id, func(u dashboard.UIState) dashboard.UIState {
			u.Table = u.Table.Toggle(key)
			return u
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// PredictFormHandler stores the submitted inputs and their prediction in the
// session and returns to the page.
func PredictFormHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		id := session(d, w, r)
		d.Sessions.Update(id, func(u dashboard.UIState) dashboard.UIState {
			for _, f := range predict.Fields {
				u.Inputs.Set(f, r.PostForm.Get(f))
			}
			score := u.Inputs.Predict()
			u.Predicted = &score
			return u
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// CSVHandler serves the local data file at its well-known path.
func CSVHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src := d.Source()
		if src == "" || parser.IsRemote(src) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		http.ServeFile(w, r, src)
	}
}

// ReadyHandler is 503 until the load attempt has finished.
func ReadyHandler(d *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Loaded() {
			http.Error(w, "loading", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
