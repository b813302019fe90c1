// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/pdf2json/internal/container"
)

// DefaultImage is the container image used when none is configured.
const DefaultImage = "markitdown:latest"

// ContainerConverter extracts text by piping the document through a
// container image such as markitdown. The runtime (docker or podman) is
// injected at construction time.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter verifies that image exists in rt and returns a
// converter bound to it. An empty image selects DefaultImage.
func NewContainerConverter(rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("image %s not available in %s: %w", image, rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert streams the file at pdfPath to the container's stdin and returns
// whatever it writes to stdout. Empty output is an error.
func (c *ContainerConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(c.image, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with %s: %w", pdfPath, c.image, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", c.image, pdfPath)
	}
	return out.String(), nil
}
