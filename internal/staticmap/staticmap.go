// Package staticmap builds map-image provider URLs for a saved route.
// It is pure string assembly; the provider renders the image at view time.
package staticmap

import (
	"fmt"
	"net/url"
)

const (
	baseURL = "https://api.mapbox.com/styles/v1"

	pathColor   = "ff6319"
	pathWidth   = 7
	imageWidth  = 600
	imageHeight = 400
)

// URL returns the rendered-map URL for an encoded route under the given
// style. An empty encoded route yields an empty string: posts saved without
// a derived route simply have no map image.
func URL(encoded, style, token string) string {
	if encoded == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/static/path-%d+%s(%s)/auto/%dx%d?access_token=%s",
		baseURL, style, pathWidth, pathColor, url.QueryEscape(encoded),
		imageWidth, imageHeight, url.QueryEscape(token))
}
