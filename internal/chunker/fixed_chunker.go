package chunker

// FixedWidthChunker splits a span into consecutive pieces of a fixed byte width.
// The last piece may be shorter.
type FixedWidthChunker struct {
	width int
}

func NewFixedWidthChunker(width int) *FixedWidthChunker {
	if width <= 0 {
		width = 4
	}
	return &FixedWidthChunker{width: width}
}

// Width returns the chunk width in bytes.
func (c *FixedWidthChunker) Width() int { return c.width }

// Chunk returns the pieces of span in left-to-right order. An empty span yields nil.
func (c *FixedWidthChunker) Chunk(span string) []string {
	if span == "" {
		return nil
	}
	chunks := make([]string, 0, (len(span)+c.width-1)/c.width)
	for i := 0; i < len(span); i += c.width {
		end := i + c.width
		if end > len(span) {
			end = len(span)
		}
		chunks = append(chunks, span[i:end])
	}
	return chunks
}
