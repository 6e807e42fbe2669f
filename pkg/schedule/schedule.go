// Package schedule defines the event schedule data model consumed by the grid
// layout: sessions, venues with their rooms, session types and tracks.
//
// Records are read-only inputs. They are fetched from an event store or
// imported from a file, filtered down to one day with [Filter], and handed to
// grid.Compute. Nothing in this package performs I/O.
//
// Every type carries both json and bson tags so the same values serve as the
// file format, the HTTP payload and the MongoDB document.
package schedule

import (
	"time"
)

// Session is a scheduled activity.
//
// Start is expected to be before End. The grid does not defend against
// inverted intervals; use [Session.Inverted] to detect them upstream.
type Session struct {
	ID           string       `json:"id" bson:"id"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	Start        time.Time    `json:"start" bson:"start"`
	End          time.Time    `json:"end" bson:"end"`
	VenueID      string       `json:"venue_id,omitempty" bson:"venue_id,omitempty"`
	RoomID       string       `json:"room_id,omitempty" bson:"room_id,omitempty"`
	Type         *SessionType `json:"type,omitempty" bson:"type,omitempty"`
	Track        *Track       `json:"track,omitempty" bson:"track,omitempty"`
	SpeakerNames []string     `json:"speaker_names,omitempty" bson:"speaker_names,omitempty"`
	Speakers     []Speaker    `json:"speakers,omitempty" bson:"speakers,omitempty"`
}

// HasVenue reports whether the session is assigned to a venue.
func (s Session) HasVenue() bool { return s.VenueID != "" }

// HasRoom reports whether the session is assigned to a specific room.
func (s Session) HasRoom() bool { return s.RoomID != "" }

// Duration returns End - Start.
func (s Session) Duration() time.Duration { return s.End.Sub(s.Start) }

// Inverted reports whether the session ends before it starts.
func (s Session) Inverted() bool { return s.End.Before(s.Start) }

// AllSpeakerNames returns the free-text speaker names followed by the names
// of structured speaker references, skipping empty entries.
func (s Session) AllSpeakerNames() []string {
	names := make([]string, 0, len(s.SpeakerNames)+len(s.Speakers))
	for _, n := range s.SpeakerNames {
		if n != "" {
			names = append(names, n)
		}
	}
	for _, sp := range s.Speakers {
		if sp.Name != "" {
			names = append(names, sp.Name)
		}
	}
	return names
}

// Venue is a physical or virtual location. A venue without rooms is itself a
// single placement target; a venue with rooms expands into one column per room.
type Venue struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Rooms []Room `json:"rooms,omitempty" bson:"rooms,omitempty"`
}

// HasRooms reports whether the venue has at least one room.
func (v Venue) HasRooms() bool { return len(v.Rooms) > 0 }

// Room belongs to exactly one venue.
type Room struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// SessionType classifies a session (talk, workshop, ...) and carries a display color.
type SessionType struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Track groups sessions thematically and carries a display color.
type Track struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Speaker is a structured speaker reference.
type Speaker struct {
	ID   string `json:"id,omitempty" bson:"id,omitempty"`
	Name string `json:"name" bson:"name"`
}

// Event is the schedule document for one event: its venue hierarchy and all
// of its sessions across every day.
type Event struct {
	ID       string    `json:"id" bson:"_id"`
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	Timezone string    `json:"timezone,omitempty" bson:"timezone,omitempty"`
	Venues   []Venue   `json:"venues,omitempty" bson:"venues,omitempty"`
	Sessions []Session `json:"sessions,omitempty" bson:"sessions,omitempty"`
}

// Location resolves the event's IANA timezone. An empty or unknown zone
// resolves to UTC.
func (e *Event) Location() *time.Location {
	if e == nil || e.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Venue returns the venue with the given ID.
func (e *Event) Venue(id string) (Venue, bool) {
	for _, v := range e.Venues {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	out := *e
	out.Venues = make([]Venue, len(e.Venues))
	for i, v := range e.Venues {
		v.Rooms = append([]Room(nil), v.Rooms...)
		out.Venues[i] = v
	}
	out.Sessions = make([]Session, len(e.Sessions))
	for i, s := range e.Sessions {
		out.Sessions[i] = s.clone()
	}
	return &out
}

func (s Session) clone() Session {
	if s.Type != nil {
		t := *s.Type
		s.Type = &t
	}
	if s.Track != nil {
		t := *s.Track
		s.Track = &t
	}
	s.SpeakerNames = append([]string(nil), s.SpeakerNames...)
	s.Speakers = append([]Speaker(nil), s.Speakers...)
	return s
}
