package profile

import (
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

// ContentType is the body serialization selected from a Content-Type header.
type ContentType int

const (
	ContentUnsupported ContentType = iota
	ContentJSON
	ContentForm
)

const (
	MediaJSON      = "application/json"
	MediaForm      = "application/x-www-form-urlencoded"
	MediaMultipart = "multipart/form-data"
)

// ResolveContentType maps a header value to its serialization. Parameters
// after ';' are ignored.
func ResolveContentType(value string) ContentType {
	switch http.MediaType(value) {
	case MediaJSON:
		return ContentJSON
	case MediaForm, MediaMultipart:
		return ContentForm
	default:
		return ContentUnsupported
	}
}

func (c ContentType) String() string {
	switch c {
	case ContentJSON:
		return "json"
	case ContentForm:
		return "form"
	default:
		return "unsupported"
	}
}
