// Package dogceo provides a client for the Dog CEO image API.
//
// The random-image endpoint answers with
//
//	{"message": "https://images.dog.ceo/breeds/<breed>/<file>.jpg", "status": "success"}
//
// and the breed is encoded in the image URL path. [Client.RandomImage]
// returns the URL only; extracting the breed is the caller's concern.
package dogceo
