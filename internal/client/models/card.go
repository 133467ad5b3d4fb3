package models

import "strings"

// AssetPrefix marks a photo that refers to an image bundled with the app
// rather than a file on disk.
const AssetPrefix = "asset:"

// DefaultPhoto is shown for cards without a usable photo.
const DefaultPhoto = AssetPrefix + "photo1"

// Card is a diary entry. Pending cards exist locally but were not yet
// accepted by the server.
type Card struct {
	ID          string
	Date        string
	Mood        string
	Location    string
	Temperature string
	Photo       string
	Pending     bool
}

// IsAssetPhoto reports whether the photo is a bundled asset identifier.
func (c Card) IsAssetPhoto() bool {
	return strings.HasPrefix(c.Photo, AssetPrefix)
}
