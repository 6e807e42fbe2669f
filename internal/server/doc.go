// Package server exposes the schedule grid pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /v1/events
//	GET    /v1/events/{eventID}
//	PUT    /v1/events/{eventID}
//	DELETE /v1/events/{eventID}
//	GET    /v1/events/{eventID}/days
//	GET    /v1/events/{eventID}/grid?day=&track=&type=&q=&tz=&format=&details=
//	POST   /v1/grid?format=
//
// Schedule bodies use the document format of [pkgio.ReadSchedule]. Grid
// responses carry the layout hash as ETag, so clients can revalidate with
// If-None-Match. Errors are JSON objects with the error code and a message;
// the status code follows [errors.HTTPStatus].
//
// [pkgio.ReadSchedule]: github.com/matzehuels/schedgrid/pkg/io.ReadSchedule
// [errors.HTTPStatus]: github.com/matzehuels/schedgrid/pkg/errors.HTTPStatus
package server
