package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PageCountProperty is the metadata property holding a document's page count.
const PageCountProperty = "PDF Page Count"

// EncryptedProperty is the metadata property that marks content as encrypted
// when set to a true value ("true", "1", ...).
const EncryptedProperty = "Encrypted"

// Item represents a document in the collection.
// Items are owned by the case store; the OCR workflow only mutates
// their tags and text.
type Item struct {
	// GUID is the stable identifier for the item.
	GUID string

	// Name is the original file name.
	Name string

	// MimeType is the detected type name (e.g. "application/pdf").
	MimeType string

	// Digest is the lowercase hex MD5 of the binary content.
	// Empty when the store could not compute one.
	Digest string

	// Size is the number of bytes that went into the digest.
	Size int64

	// Text is the extracted text.
	Text string

	// Encrypted reports whether the content is encrypted.
	Encrypted bool

	// Excluded reports whether the item is excluded from the case.
	Excluded bool

	// Properties contains metadata properties.
	Properties map[string]string

	// Position is the ordered location of the item within its evidence tree.
	Position []int

	// Tags is the set of tag names applied to the item.
	Tags []string

	// NativePath is where the binary content can be read from.
	NativePath string

	// PrintedPath is the structured (searchable PDF) rendition, if imported.
	PrintedPath string

	// CreatedAt is when the item was added to the collection.
	CreatedAt time.Time

	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time
}

// HasDigest reports whether the item has a content hash.
func (i Item) HasDigest() bool {
	return i.Digest != ""
}

// HasText reports whether the item has any extracted text.
func (i Item) HasText() bool {
	return i.Text != ""
}

// HasTag reports whether the item carries the named tag.
func (i Item) HasTag(name string) bool {
	for _, t := range i.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// PageCount returns the page count from metadata.
// Absent, non-numeric and non-positive values count as one page.
func (i Item) PageCount() int {
	raw, ok := i.Properties[PageCountProperty]
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PositionKey serialises the position as fixed-width 9 digit components.
// Lexicographic order of keys matches the physical order of items.
func (i Item) PositionKey() string {
	var b strings.Builder
	b.Grow(len(i.Position) * 9)
	for _, p := range i.Position {
		fmt.Fprintf(&b, "%09d", p)
	}
	return b.String()
}
