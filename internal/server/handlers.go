package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/schedgrid/pkg/buildinfo"
	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/errors"
	pkgio "github.com/matzehuels/schedgrid/pkg/io"
	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/render"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/storage"
)

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// =============================================================================
// Events
// =============================================================================

type eventsResponse struct {
	Events []string `json:"events"`
}

type putEventResponse struct {
	ID       string   `json:"id"`
	Sessions int      `json:"sessions"`
	Days     []string `json:"days"`
}

type daysResponse struct {
	EventID  string   `json:"event_id"`
	Timezone string   `json:"timezone"`
	Days     []string `json:"days"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.ListEvents(r.Context())
	if err != nil {
		s.writeError(w, r, storageError(err, "list events"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: ids})
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.runner.Load(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := pkgio.WriteJSON(ev, w); err != nil {
		s.logger.Error("write event", "event", ev.ID, "err", err)
	}
}

// handlePutEvent stores the schedule in the body under the id from the URL.
// A body carrying a different id is rejected.
func (s *Server) handlePutEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventID")
	if err := errors.ValidateEventID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	ev, err := s.readSchedule(w, r, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.PutEvent(r.Context(), ev); err != nil {
		s.writeError(w, r, storageError(err, "store event %s", id))
		return
	}

	s.logger.Info("stored event", "event", id, "sessions", len(ev.Sessions))
	writeJSON(w, http.StatusOK, putEventResponse{
		ID:       id,
		Sessions: len(ev.Sessions),
		Days:     nonNil(pipeline.Days(ev, pipeline.Options{})),
	})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventID")
	if err := errors.ValidateEventID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		s.writeError(w, r, storageError(err, "delete event %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ev, err := s.runner.Load(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sel := pipeline.Select(ev, opts)
	writeJSON(w, http.StatusOK, daysResponse{
		EventID:  ev.ID,
		Timezone: sel.Location.String(),
		Days:     nonNil(sel.Days),
	})
}

// =============================================================================
// Grids
// =============================================================================

func (s *Server) handleEventGrid(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.EventID = chi.URLParam(r, "eventID")

	res, err := s.runner.ExecuteEvent(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, r, res, opts.Formats[0])
}

// handleAdHocGrid lays out a schedule posted in the body without storing it.
func (s *Server) handleAdHocGrid(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ev, err := s.readSchedule(w, r, "")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), ev, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, r, res, opts.Formats[0])
}

func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, res *pipeline.Result, format string) {
	data := res.Artifacts[format]
	etag := `"` + cache.Hash(data)[:32] + `"`

	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Schedgrid-Day", res.Layout.Day)
	h.Set("X-Schedgrid-Dropped", strconv.Itoa(res.Stats.Dropped))
	if res.CacheInfo.RenderHit {
		h.Set("X-Schedgrid-Cache", "hit")
	} else {
		h.Set("X-Schedgrid-Cache", "miss")
	}

	if strings.Contains(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", render.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Request Decoding
// =============================================================================

// options merges the query parameters into the server defaults. Exactly one
// output format is served per request.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.defaults
	opts.Day = q.Get("day")
	opts.Tracks = splitList(q["track"])
	opts.Types = splitList(q["type"])
	opts.Search = q.Get("q")
	if tz := q.Get("tz"); tz != "" {
		opts.Timezone = tz
	}

	format := q.Get("format")
	if format == "" {
		format = render.FormatJSON
	}
	if err := render.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	if v := q.Get("details"); v != "" {
		details, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid details flag %q", v)
		}
		opts.Details = details
	}
	if err := errors.ValidateDay(opts.Day); err != nil {
		return opts, err
	}
	return opts, errors.ValidateTimezone(opts.Timezone)
}

// readSchedule decodes the request body as JSON, or TOML when the content
// type says so. A non-empty id binds the document to that id.
func (s *Server) readSchedule(w http.ResponseWriter, r *http.Request, id string) (*schedule.Event, error) {
	format := pkgio.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = pkgio.FormatTOML
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if id == "" {
		return pkgio.ReadSchedule(body, format)
	}
	return pkgio.ReadScheduleFor(body, format, id)
}

func storageError(err error, format string, args ...any) error {
	if storage.IsNotFound(err) || errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeStorage, err, format, args...)
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
