package interfaces

// ImageURLBuilder produces the URL of an image asset resized to width pixels.
// The resizing pipeline itself lives with the asset host.
type ImageURLBuilder interface {
	URL(source string, width int) string
}
