// Package randomuser provides a client for the Random User Generator API.
//
// Only the first name is used. The endpoint is queried with inc=name so the
// response carries nothing else:
//
//	{"results": [{"name": {"title": "Ms", "first": "Mia", "last": "Berg"}}], "info": {...}}
package randomuser
