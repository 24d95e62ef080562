// Package parser provides Markdown parsing and content chunking for file ingestion.
package parser

import (
	"bufio"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarkdownDoc represents a parsed Markdown document.
type MarkdownDoc struct {
	// Frontmatter metadata (from YAML)
	Frontmatter map[string]any

	// Title extracted from frontmatter or first h1
	Title string

	// Main content (after frontmatter)
	Content string

	// Structured content by heading
	Sections []Section
}

// Section represents a heading and its content.
type Section struct {
	Level   int    // 1-6 for h1-h6
	Heading string // The heading text
	Path    string // Full path like "# Setup > ## Install"
	Content string // Content under this heading
}

var (
	headingRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	h1Regex      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// ParseMarkdown parses a Markdown document into structured form.
// YAML frontmatter errors are tolerated; the document is still usable.
func ParseMarkdown(content string) *MarkdownDoc {
	doc := &MarkdownDoc{
		Frontmatter: make(map[string]any),
	}

	remaining := content
	if strings.HasPrefix(content, "---\n") {
		if endIdx := strings.Index(content[4:], "\n---"); endIdx > 0 {
			frontmatterYAML := content[4 : 4+endIdx]
			remaining = strings.TrimPrefix(content[4+endIdx+4:], "\n")

			if err := yaml.Unmarshal([]byte(frontmatterYAML), &doc.Frontmatter); err != nil {
				doc.Frontmatter = make(map[string]any)
			}
		}
	}

	doc.Content = remaining
	doc.Title = extractTitle(doc.Frontmatter, remaining)
	doc.Sections = parseSections(remaining)

	return doc
}

// GetFrontmatterString extracts a string value from frontmatter.
func (d *MarkdownDoc) GetFrontmatterString(key string) string {
	if v, ok := d.Frontmatter[key].(string); ok {
		return v
	}
	return ""
}

// extractTitle gets title from frontmatter or the first h1.
func extractTitle(fm map[string]any, content string) string {
	if title, ok := fm["title"].(string); ok && title != "" {
		return title
	}
	if match := h1Regex.FindStringSubmatch(content); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// parseSections extracts heading-delimited sections from Markdown content.
func parseSections(content string) []Section {
	var sections []Section
	var currentPath []string
	var currentLevels []int

	var current *Section
	var body strings.Builder

	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(body.String())
			sections = append(sections, *current)
			body.Reset()
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		match := headingRegex.FindStringSubmatch(line)
		if match == nil {
			if current != nil {
				body.WriteString(line)
				body.WriteString("\n")
			}
			continue
		}

		flush()

		level := len(match[1])
		heading := strings.TrimSpace(match[2])

		// Pop siblings and deeper levels off the heading path
		for len(currentLevels) > 0 && currentLevels[len(currentLevels)-1] >= level {
			currentPath = currentPath[:len(currentPath)-1]
			currentLevels = currentLevels[:len(currentLevels)-1]
		}
		currentPath = append(currentPath, match[1]+" "+heading)
		currentLevels = append(currentLevels, level)

		current = &Section{
			Level:   level,
			Heading: heading,
			Path:    strings.Join(currentPath, " > "),
		}
	}
	flush()

	return sections
}
