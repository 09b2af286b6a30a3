package port

// TextExtractor reads a paginated document and returns the plain text of its
// leading pages.
type TextExtractor interface {
	Extract(path string) (string, error)
}
