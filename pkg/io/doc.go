// Package io reads and writes schedule documents.
//
// # Document Format
//
// A schedule document describes one event. Session types, tracks and
// speakers are declared once at the top level and referenced by id from
// sessions:
//
//	{
//	  "id": "gophercon-eu",
//	  "name": "GopherCon EU",
//	  "timezone": "Europe/Berlin",
//	  "venues": [
//	    {"id": "hall", "name": "Main Hall", "rooms": [{"id": "r1", "name": "Room 1"}]},
//	    {"id": "garden", "name": "Garden"}
//	  ],
//	  "types":  [{"id": "talk", "name": "Talk", "color": "#4C6EF5"}],
//	  "tracks": [{"id": "go", "name": "Go", "color": "#00ADD8"}],
//	  "speakers": [{"id": "ada", "name": "Ada Lovelace"}],
//	  "sessions": [
//	    {
//	      "id": "s1", "title": "Opening",
//	      "start": "2025-06-10T10:00:00+02:00", "end": "2025-06-10T10:30:00+02:00",
//	      "venue": "hall", "room": "r1", "type": "talk", "track": "go",
//	      "speakers": ["ada"], "speaker_names": ["Guest"]
//	    }
//	  ]
//	}
//
// The same structure is accepted as TOML, with native TOML datetimes for
// start and end. The format is chosen from the file extension by
// [ImportFile] and [ExportFile].
//
// # Identifiers
//
// Missing event, venue, room, session and speaker ids are filled with random
// UUIDs at import. A session that references an unknown type, track or
// speaker is rejected. Unknown venue and room references are kept: the grid
// leaves such sessions out of the layout and reports them as dropped.
package io
