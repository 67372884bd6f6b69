package source

import "errors"

// Sentinel kinds for load errors.
var (
	ErrLoad      = errors.New("load failed")
	ErrNoSource  = errors.New("no data source configured")
	ErrBadStatus = errors.New("unexpected response status")
	ErrMalformed = errors.New("malformed csv")
)
