package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driving"
)

func TestCollection_AddWalksAndHashes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), "same bytes")
	writeFile(t, filepath.Join(dir, "a.pdf.txt"), "extracted text")
	writeFile(t, filepath.Join(dir, "sub", "b.pdf"), "same bytes")
	writeFile(t, filepath.Join(dir, "sub", "photo.JPG"), "jpeg bytes")
	writeFile(t, filepath.Join(dir, "notes.txt"), "standalone")
	single := filepath.Join(t.TempDir(), "scan.tif")
	writeFile(t, single, "tiff")

	store := memory.NewItemStore()
	svc := NewCollectionService(store)

	result, err := svc.Add(context.Background(), []string{dir, single}, driving.AddOptions{
		Properties: map[string]string{domain.PageCountProperty: "2"},
		Workers:    2,
	})
	require.NoError(t, err)
	require.Empty(t, result.Failed)
	require.Len(t, result.Items, 5)

	byName := make(map[string]domain.Item)
	for _, item := range result.Items {
		byName[item.Name] = item
	}

	a, b := byName["a.pdf"], byName["b.pdf"]
	assert.Equal(t, domain.DocumentMimeType, a.MimeType)
	assert.Equal(t, "extracted text", a.Text)
	assert.Equal(t, a.Digest, b.Digest, "identical content shares a digest")
	assert.Len(t, a.Digest, 32)
	assert.Equal(t, int64(len("same bytes")), a.Size)
	assert.Equal(t, 2, a.PageCount())
	assert.Equal(t, "image/jpeg", byName["photo.JPG"].MimeType)
	assert.Equal(t, "image/tiff", byName["scan.tif"].MimeType)
	assert.Equal(t, []int{2, 1}, byName["scan.tif"].Position)
	assert.Contains(t, byName, "notes.txt", "text files without a sibling are items")
	assert.NotContains(t, byName, "a.pdf.txt")

	stored, err := svc.List(context.Background(), domain.ItemQuery{Digest: a.Digest})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestCollection_AddEncryptedSkipsMustOCR(t *testing.T) {
	plainDir, lockedDir := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(plainDir, "scan.pdf"), "%PDF plain")
	writeFile(t, filepath.Join(lockedDir, "locked.pdf"), "%PDF locked")
	writeFile(t, filepath.Join(lockedDir, "sealed.pdf"), "%PDF sealed")

	store := memory.NewItemStore()
	svc := NewCollectionService(store)
	ctx := context.Background()

	plain, err := svc.Add(ctx, []string{plainDir}, driving.AddOptions{})
	require.NoError(t, err)
	byProperty, err := svc.Add(ctx, []string{filepath.Join(lockedDir, "locked.pdf")}, driving.AddOptions{
		Properties: map[string]string{domain.EncryptedProperty: "true"},
	})
	require.NoError(t, err)
	byOption, err := svc.Add(ctx, []string{filepath.Join(lockedDir, "sealed.pdf")}, driving.AddOptions{Encrypted: true})
	require.NoError(t, err)

	require.Len(t, byProperty.Items, 1)
	require.Len(t, byOption.Items, 1)
	assert.False(t, plain.Items[0].Encrypted)
	assert.True(t, byProperty.Items[0].Encrypted)
	assert.True(t, byOption.Items[0].Encrypted)

	tagger := &mockTagService{}
	_, err = NewClassificationService(store, tagger).Classify(ctx, domain.DefaultOCRSettings(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{plain.Items[0].GUID}, tagger.tagged(domain.TagMustOCR.Name()))
}

func TestCollection_AddInvalidEncryptedProperty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), "%PDF")
	svc := NewCollectionService(memory.NewItemStore())

	_, err := svc.Add(context.Background(), []string{dir}, driving.AddOptions{
		Properties: map[string]string{domain.EncryptedProperty: "maybe"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCollection_ExcludeInclude(t *testing.T) {
	store := memory.NewItemStore(domain.Item{GUID: "g1"}, domain.Item{GUID: "g2"})
	svc := NewCollectionService(store)
	ctx := context.Background()

	n, err := svc.Exclude(ctx, []string{"g1", "g2"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	item, err := svc.Get(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, item.Excluded)

	n, err = svc.Include(ctx, []string{"g1"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollection_AddErrors(t *testing.T) {
	svc := NewCollectionService(memory.NewItemStore())

	_, err := svc.Add(context.Background(), nil, driving.AddOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Add(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, driving.AddOptions{})
	assert.Error(t, err)
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", detectMimeType("x.PDF"))
	assert.Equal(t, "image/png", detectMimeType("x.png"))
	assert.Equal(t, "image/vnd.ms-emf", detectMimeType("x.emf"))
	assert.Equal(t, "application/octet-stream", detectMimeType("x.unknownext"))
}
