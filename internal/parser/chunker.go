package parser

import "strings"

// Chunk is a piece of a document sized for embedding.
type Chunk struct {
	Content     string
	Position    int
	HeadingPath string
}

// ChunkConfig defines chunking parameters.
type ChunkConfig struct {
	// Threshold: only chunk if content exceeds this length
	Threshold int
	// MaxSize: maximum chunk size (larger content splits at paragraphs)
	MaxSize int
	// MinSize: minimum chunk size (smaller sections merge with neighbors)
	MinSize int
}

// DefaultChunkConfig returns sensible defaults for embedding-sized chunks.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Threshold: 1500,
		MaxSize:   1000,
		MinSize:   200,
	}
}

// ChunkDocument splits a parsed document into embedding-sized chunks.
// Section boundaries are preferred, then paragraph boundaries.
func ChunkDocument(doc *MarkdownDoc, config ChunkConfig) []Chunk {
	if len(doc.Content) <= config.Threshold {
		return []Chunk{{Content: strings.TrimSpace(doc.Content)}}
	}

	if len(doc.Sections) > 0 {
		return chunkBySections(doc.Sections, config)
	}

	return chunkByParagraphs(doc.Content, "", 0, config)
}

// chunkBySections creates chunks from document sections, merging tiny
// sections into their predecessor and splitting oversized ones.
func chunkBySections(sections []Section, config ChunkConfig) []Chunk {
	var chunks []Chunk

	for _, section := range sections {
		if section.Content == "" {
			continue
		}

		if len(section.Content) <= config.MaxSize {
			if len(section.Content) >= config.MinSize || len(chunks) == 0 {
				chunks = append(chunks, Chunk{
					Content:     section.Content,
					Position:    len(chunks),
					HeadingPath: section.Path,
				})
			} else {
				last := &chunks[len(chunks)-1]
				last.Content += "\n\n" + section.Content
			}
			continue
		}

		chunks = append(chunks, chunkByParagraphs(section.Content, section.Path, len(chunks), config)...)
	}

	return chunks
}

// chunkByParagraphs splits content at double-newline boundaries, packing
// paragraphs greedily up to MaxSize.
func chunkByParagraphs(content, headingPath string, startPos int, config ChunkConfig) []Chunk {
	var chunks []Chunk
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, Chunk{
				Content:     strings.TrimSpace(current.String()),
				Position:    startPos + len(chunks),
				HeadingPath: headingPath,
			})
			current.Reset()
		}
	}

	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if current.Len()+len(para) > config.MaxSize {
			flush()
		}

		// A single paragraph larger than MaxSize is split at word boundaries.
		for len(para) > config.MaxSize {
			cut := strings.LastIndex(para[:config.MaxSize], " ")
			if cut <= 0 {
				cut = config.MaxSize
			}
			chunks = append(chunks, Chunk{
				Content:     strings.TrimSpace(para[:cut]),
				Position:    startPos + len(chunks),
				HeadingPath: headingPath,
			})
			para = strings.TrimSpace(para[cut:])
		}

		if para == "" {
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
