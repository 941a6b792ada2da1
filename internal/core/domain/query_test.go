package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeRange_HalfOpen(t *testing.T) {
	r := SizeRange{Min: Size1MB, Max: SizeCap}
	assert.True(t, r.Contains(Size1MB))
	assert.False(t, r.Contains(Size1MB-1))
	assert.False(t, r.Contains(SizeCap))
}

func TestItemQuery_Matches(t *testing.T) {
	pdf := Item{MimeType: DocumentMimeType, Size: 10}
	encrypted := Item{MimeType: DocumentMimeType, Encrypted: true}
	withText := Item{MimeType: DocumentMimeType, Text: "words"}
	excluded := Item{MimeType: DocumentMimeType, Excluded: true}
	image := Item{MimeType: "image/png", Size: Size5MB, Digest: "ABCDEF"}

	mustOCR := ItemQuery{
		MimeTypes: []string{DocumentMimeType},
		HasText:   Bool(false),
		Encrypted: Bool(false),
	}
	assert.True(t, mustOCR.Matches(pdf))
	assert.False(t, mustOCR.Matches(encrypted))
	assert.False(t, mustOCR.Matches(withText))
	assert.True(t, mustOCR.Matches(excluded))
	assert.False(t, mustOCR.ExcludingExcluded().Matches(excluded))
	assert.False(t, mustOCR.Matches(image))

	big := ItemQuery{MimeTypes: ImageMimeTypes, Size: &SizeRange{Min: Size1MB, Max: SizeCap}}
	assert.True(t, big.Matches(image))

	assert.True(t, ItemQuery{Digest: "abcdef"}.Matches(image))
	assert.True(t, ItemQuery{}.Matches(image))
	assert.True(t, ItemQuery{}.IsEmpty())
	assert.False(t, mustOCR.IsEmpty())
}

func TestItemQuery_String(t *testing.T) {
	q := ItemQuery{
		MimeTypes: []string{DocumentMimeType},
		HasText:   Bool(false),
		Encrypted: Bool(false),
	}
	assert.Equal(t, "mime-type:application/pdf AND contains-text:0 AND encrypted:0", q.String())
	assert.Equal(t,
		"has-exclusion:0 (mime-type:application/pdf AND contains-text:0 AND encrypted:0)",
		q.ExcludingExcluded().String())

	sized := ItemQuery{Size: &SizeRange{Min: Size500KB, Max: SizeCap}}
	assert.Equal(t, "digest-input-size:[512000 TO 1073740824}", sized.String())
	assert.Equal(t, "has-exclusion:0", ItemQuery{WithoutExcluded: true}.String())
	assert.Equal(t, `tag:"OCR|Must"`, ItemQuery{Tag: "OCR|Must"}.String())
}

func TestExportExtension(t *testing.T) {
	ext, ok := ExportExtension("image/jpeg")
	assert.True(t, ok)
	assert.Equal(t, "jpeg", ext)

	ext, ok = ExportExtension(DocumentMimeType)
	assert.True(t, ok)
	assert.Equal(t, "pdf", ext)

	_, ok = ExportExtension("application/msword")
	assert.False(t, ok)
}
