package models

import (
	"fmt"
)

var (
	ErrNoSupportedImages = fmt.Errorf("no supported images found")
	ErrNoGalleryItems    = fmt.Errorf("no images survived processing")
)

/*
SourceFile is a candidate image in the source directory. The format is
inferred from the extension, never from the content.
*/
type SourceFile struct {
	Path string
	Name string
}

/*
GalleryItem is one accepted image. The sanitized name is shared by the
copied original and its thumbnail, and is the item's identity. Collisions
after sanitization are not deduplicated.
*/
type GalleryItem struct {
	Name string
}

type Gallery struct {
	Title string
	Items []GalleryItem
}
