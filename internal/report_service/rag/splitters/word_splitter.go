package splitters

import "strings"

// DefaultChunkSize is the chunk bound used when a caller passes a
// non-positive size.
const DefaultChunkSize = 1000

// WordSplitter splits raw text into segments of at most ChunkSize characters,
// breaking at whitespace boundaries. A single word longer than ChunkSize
// becomes its own oversize segment rather than being cut or dropped.
type WordSplitter struct {
	ChunkSize int
}

// NewWordSplitter creates a WordSplitter with the given character bound.
func NewWordSplitter(chunkSize int) *WordSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &WordSplitter{ChunkSize: chunkSize}
}

// Split cuts content into consecutive word-wrapped segments. Words keep their
// original order and every word appears in exactly one segment; joining the
// segments with single spaces reproduces the whitespace-normalized input.
// Empty or whitespace-only input yields no segments.
func (s *WordSplitter) Split(content string) []string {
	words := strings.Fields(content)
	if len(words) == 0 {
		return nil
	}

	var segments []string
	var sb strings.Builder

	for _, word := range words {
		if sb.Len() == 0 {
			sb.WriteString(word)
			continue
		}
		// +1 for the joining space.
		if sb.Len()+1+len(word) <= s.ChunkSize {
			sb.WriteByte(' ')
			sb.WriteString(word)
			continue
		}
		segments = append(segments, sb.String())
		sb.Reset()
		sb.WriteString(word)
	}

	if sb.Len() > 0 {
		segments = append(segments, sb.String())
	}

	return segments
}
