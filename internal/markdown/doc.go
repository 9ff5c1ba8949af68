// Package markdown renders Markdown text block bodies to HTML with goldmark.
package markdown
