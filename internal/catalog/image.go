package catalog

import (
	"fmt"
	"strings"
)

// ImageURL resolves an image asset reference like
// "image-abc123-800x600-jpg" to its CDN URL. Returns an empty string for
// refs that do not follow the asset reference format.
func (c *Client) ImageURL(img Image) string {
	ref := img.Asset.Ref
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return ""
	}
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s",
		c.projectID, c.dataset, parts[1], parts[2], parts[3])
}
