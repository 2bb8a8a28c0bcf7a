/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package thumb produces small in-memory previews of source photos for
// the image list. Decoding happens in-process; the full-size pipeline
// stays with ImageMagick.
package thumb

import (
	"fmt"
	"image"
	"os"

	// register decoders for the formats the image list accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// DefaultEdge is the bounding box edge used for list thumbnails.
const DefaultEdge = 96

// FromFile decodes path and scales it to fit inside an edge x edge box,
// preserving aspect ratio. edge <= 0 falls back to DefaultEdge.
func FromFile(path string, edge int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Scale(src, edge), nil
}

// Scale fits src into an edge x edge box. Images already inside the box
// are returned unchanged.
func Scale(src image.Image, edge int) image.Image {
	if edge <= 0 {
		edge = DefaultEdge
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= edge && h <= edge {
		return src
	}

	var tw, th int
	if w >= h {
		tw = edge
		th = h * edge / w
	} else {
		th = edge
		tw = w * edge / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
