package domain

// TagKind identifies one of the tags applied by the OCR workflow.
// The host tag label is produced by Name so internal logic never
// depends on the label text.
type TagKind int

// Tag kinds applied by the export, import and classification engines.
const (
	// TagExported marks items exported for OCR, including duplicates of an exported item.
	TagExported TagKind = iota
	// TagImported marks items updated from OCR output.
	TagImported
	// TagMustOCR marks documents with no text that are not encrypted.
	TagMustOCR
	// TagImagesOver500KB marks images of at least 500KB.
	TagImagesOver500KB
	// TagImagesOver1MB marks images of at least 1MB.
	TagImagesOver1MB
	// TagImagesOver5MB marks images of at least 5MB.
	TagImagesOver5MB
	// TagAvgWords01To20 marks documents averaging 1 to 20 words per page.
	TagAvgWords01To20
	// TagAvgWords21To40 marks documents averaging 21 to 40 words per page.
	TagAvgWords21To40
	// TagAvgWords41To60 marks documents averaging 41 to 60 words per page.
	TagAvgWords41To60
	// TagAvgWords61To80 marks documents averaging 61 to 80 words per page.
	TagAvgWords61To80
	// TagAvgWords81To100 marks documents averaging 81 to 100 words per page.
	TagAvgWords81To100
	// TagAvgWordsOver100 marks documents averaging more than 100 words per page.
	TagAvgWordsOver100
)

var tagNames = map[TagKind]string{
	TagExported:        "OCR|Exported For OCR",
	TagImported:        "OCR|Imported OCR Document",
	TagMustOCR:         "OCR|Must",
	TagImagesOver500KB: "OCR|Images|Over 500Kb",
	TagImagesOver1MB:   "OCR|Images|Over 1MB",
	TagImagesOver5MB:   "OCR|Images|Over 5MB",
	TagAvgWords01To20:  "OCR|PDF Avg Words Per Page|01 to 20",
	TagAvgWords21To40:  "OCR|PDF Avg Words Per Page|21 to 40",
	TagAvgWords41To60:  "OCR|PDF Avg Words Per Page|41 to 60",
	TagAvgWords61To80:  "OCR|PDF Avg Words Per Page|61 to 80",
	TagAvgWords81To100: "OCR|PDF Avg Words Per Page|81 to 100",
	TagAvgWordsOver100: "OCR|PDF Avg Words Per Page|101 or Greater",
}

// Name returns the host tag label.
func (k TagKind) Name() string {
	if name, ok := tagNames[k]; ok {
		return name
	}
	return ""
}

// IsValid returns true if the tag kind is recognised.
func (k TagKind) IsValid() bool {
	_, ok := tagNames[k]
	return ok
}

// String returns the host tag label.
func (k TagKind) String() string {
	return k.Name()
}

// AllTagKinds returns every tag kind in declaration order.
func AllTagKinds() []TagKind {
	kinds := make([]TagKind, 0, len(tagNames))
	for k := TagExported; k <= TagAvgWordsOver100; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// TagMode selects what a flush does with a batch of items.
type TagMode string

// Available tag modes.
const (
	// TagModeAdd adds the tag to every flushed item.
	TagModeAdd TagMode = "add"

	// TagModeRemove removes the tag from every flushed item.
	TagModeRemove TagMode = "remove"

	// TagModeOff discards pending items without touching the store.
	TagModeOff TagMode = "off"
)

// IsValid returns true if the tag mode is recognised.
func (m TagMode) IsValid() bool {
	switch m {
	case TagModeAdd, TagModeRemove, TagModeOff:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m TagMode) String() string {
	return string(m)
}
