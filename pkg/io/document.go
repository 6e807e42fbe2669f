package io

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

type document struct {
	ID       string       `json:"id,omitempty" toml:"id,omitempty"`
	Name     string       `json:"name,omitempty" toml:"name,omitempty"`
	Timezone string       `json:"timezone,omitempty" toml:"timezone,omitempty"`
	Venues   []venueDoc   `json:"venues,omitempty" toml:"venues,omitempty"`
	Types    []labelDoc   `json:"types,omitempty" toml:"types,omitempty"`
	Tracks   []labelDoc   `json:"tracks,omitempty" toml:"tracks,omitempty"`
	Speakers []speakerDoc `json:"speakers,omitempty" toml:"speakers,omitempty"`
	Sessions []sessionDoc `json:"sessions,omitempty" toml:"sessions,omitempty"`
}

type venueDoc struct {
	ID    string    `json:"id,omitempty" toml:"id,omitempty"`
	Name  string    `json:"name" toml:"name"`
	Rooms []roomDoc `json:"rooms,omitempty" toml:"rooms,omitempty"`
}

type roomDoc struct {
	ID   string `json:"id,omitempty" toml:"id,omitempty"`
	Name string `json:"name" toml:"name"`
}

type labelDoc struct {
	ID    string `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Color string `json:"color,omitempty" toml:"color,omitempty"`
}

type speakerDoc struct {
	ID   string `json:"id,omitempty" toml:"id,omitempty"`
	Name string `json:"name" toml:"name"`
}

type sessionDoc struct {
	ID           string    `json:"id,omitempty" toml:"id,omitempty"`
	Title        string    `json:"title" toml:"title"`
	Description  string    `json:"description,omitempty" toml:"description,omitempty"`
	Start        time.Time `json:"start" toml:"start"`
	End          time.Time `json:"end" toml:"end"`
	Venue        string    `json:"venue,omitempty" toml:"venue,omitempty"`
	Room         string    `json:"room,omitempty" toml:"room,omitempty"`
	Type         string    `json:"type,omitempty" toml:"type,omitempty"`
	Track        string    `json:"track,omitempty" toml:"track,omitempty"`
	Speakers     []string  `json:"speakers,omitempty" toml:"speakers,omitempty"`
	SpeakerNames []string  `json:"speaker_names,omitempty" toml:"speaker_names,omitempty"`
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// toEvent resolves references and assigns missing ids.
func (d *document) toEvent() (*schedule.Event, error) {
	if d.ID != "" {
		if err := errors.ValidateEventID(d.ID); err != nil {
			return nil, err
		}
	}
	if err := errors.ValidateTimezone(d.Timezone); err != nil {
		return nil, err
	}

	ev := &schedule.Event{ID: newID(d.ID), Name: d.Name, Timezone: d.Timezone}

	for _, v := range d.Venues {
		out := schedule.Venue{ID: newID(v.ID), Name: v.Name}
		for _, r := range v.Rooms {
			out.Rooms = append(out.Rooms, schedule.Room{ID: newID(r.ID), Name: r.Name})
		}
		ev.Venues = append(ev.Venues, out)
	}

	types, err := labels(d.Types, "type")
	if err != nil {
		return nil, err
	}
	tracks, err := labels(d.Tracks, "track")
	if err != nil {
		return nil, err
	}
	speakers := make(map[string]schedule.Speaker, len(d.Speakers))
	for _, sp := range d.Speakers {
		id := newID(sp.ID)
		speakers[id] = schedule.Speaker{ID: id, Name: sp.Name}
	}

	seen := make(map[string]bool, len(d.Sessions))
	for i, s := range d.Sessions {
		out := schedule.Session{
			ID:           newID(s.ID),
			Title:        s.Title,
			Description:  s.Description,
			Start:        s.Start,
			End:          s.End,
			VenueID:      s.Venue,
			RoomID:       s.Room,
			SpeakerNames: s.SpeakerNames,
		}
		if seen[out.ID] {
			return nil, errors.New(errors.ErrCodeInvalidSchedule, "session %s: duplicate id", out.ID)
		}
		seen[out.ID] = true
		if s.Start.IsZero() || s.End.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidSchedule, "session %d (%s): start and end are required", i, out.ID)
		}
		if s.Type != "" {
			t, ok := types[s.Type]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidSchedule, "session %s: unknown type %q", out.ID, s.Type)
			}
			out.Type = &schedule.SessionType{ID: t.ID, Name: t.Name, Color: t.Color}
		}
		if s.Track != "" {
			t, ok := tracks[s.Track]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidSchedule, "session %s: unknown track %q", out.ID, s.Track)
			}
			out.Track = &schedule.Track{ID: t.ID, Name: t.Name, Color: t.Color}
		}
		for _, id := range s.Speakers {
			sp, ok := speakers[id]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidSchedule, "session %s: unknown speaker %q", out.ID, id)
			}
			out.Speakers = append(out.Speakers, sp)
		}
		ev.Sessions = append(ev.Sessions, out)
	}
	return ev, nil
}

func labels(in []labelDoc, kind string) (map[string]labelDoc, error) {
	out := make(map[string]labelDoc, len(in))
	for _, l := range in {
		if l.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidSchedule, "%s %q: id is required", kind, l.Name)
		}
		if err := errors.ValidateColor(l.Color); err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, l.ID, err)
		}
		out[l.ID] = l
	}
	return out, nil
}

// fromEvent builds a document, collecting the types, tracks and speakers
// referenced by sessions in first-seen order.
func fromEvent(ev *schedule.Event) document {
	d := document{ID: ev.ID, Name: ev.Name, Timezone: ev.Timezone}
	for _, v := range ev.Venues {
		vd := venueDoc{ID: v.ID, Name: v.Name}
		for _, r := range v.Rooms {
			vd.Rooms = append(vd.Rooms, roomDoc{ID: r.ID, Name: r.Name})
		}
		d.Venues = append(d.Venues, vd)
	}

	seenType, seenTrack, seenSpeaker := map[string]bool{}, map[string]bool{}, map[string]bool{}
	for _, s := range ev.Sessions {
		sd := sessionDoc{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			Start:        s.Start,
			End:          s.End,
			Venue:        s.VenueID,
			Room:         s.RoomID,
			SpeakerNames: slices.Clone(s.SpeakerNames),
		}
		if t := s.Type; t != nil {
			sd.Type = t.ID
			if !seenType[t.ID] {
				seenType[t.ID] = true
				d.Types = append(d.Types, labelDoc{ID: t.ID, Name: t.Name, Color: t.Color})
			}
		}
		if t := s.Track; t != nil {
			sd.Track = t.ID
			if !seenTrack[t.ID] {
				seenTrack[t.ID] = true
				d.Tracks = append(d.Tracks, labelDoc{ID: t.ID, Name: t.Name, Color: t.Color})
			}
		}
		for _, sp := range s.Speakers {
			id := sp.ID
			if id == "" {
				// References without an id are kept as free text.
				sd.SpeakerNames = append(sd.SpeakerNames, sp.Name)
				continue
			}
			sd.Speakers = append(sd.Speakers, id)
			if !seenSpeaker[id] {
				seenSpeaker[id] = true
				d.Speakers = append(d.Speakers, speakerDoc{ID: id, Name: sp.Name})
			}
		}
		d.Sessions = append(d.Sessions, sd)
	}
	return d
}
