// Package slides splits item text into per-screen chunks.
//
// The chunking rule is part of the presentation protocol: slide indices travel
// over the wire as bare integers, so the control plane, the displays, and any
// preview pane must all derive identical chunk boundaries from the same text.
// Change this package and every connected display disagrees about what
// "slide N" shows.
package slides

import "strings"

// DefaultMaxLines is the number of lines one slide holds. Shared constant of
// the protocol, not a config knob.
const DefaultMaxLines = 4

// Chunk splits body into ordered slide chunks.
//
// Paragraphs are runs of non-blank lines separated by one or more blank lines
// (blank after trimming whitespace). Each paragraph yields one chunk per
// consecutive run of up to maxLines lines, joined back with single newlines.
// A whitespace-only body yields no chunks. Pure and deterministic.
func Chunk(body string, maxLines int) []string {
	if maxLines < 1 {
		maxLines = DefaultMaxLines
	}

	var chunks []string
	var paragraph []string

	flush := func() {
		for start := 0; start < len(paragraph); start += maxLines {
			end := start + maxLines
			if end > len(paragraph) {
				end = len(paragraph)
			}
			chunks = append(chunks, strings.Join(paragraph[start:end], "\n"))
		}
		paragraph = paragraph[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		paragraph = append(paragraph, line)
	}
	flush()

	return chunks
}

// Count returns the number of slides Chunk would produce without building
// them.
func Count(body string, maxLines int) int {
	return len(Chunk(body, maxLines))
}
