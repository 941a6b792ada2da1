package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/storage/textfile"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/fileutil"
)

// tagSeparator joins tag names in the aggregated tag column.
const tagSeparator = "\x1f"

const itemColumns = `
	i.guid, i.name, i.mime_type, i.digest, i.size, i.text, i.encrypted, i.excluded,
	i.properties, i.position, i.native_path, i.printed_path, i.created_at, i.updated_at,
	(SELECT group_concat(t.tag_name, char(31)) FROM item_tags t WHERE t.item_guid = i.guid)`

// ItemStore returns the collection as a driven.ItemStore.
func (s *Store) ItemStore() driven.ItemStore {
	return &itemStore{store: s}
}

// TagService returns a driven.TagService backed by this store.
func (s *Store) TagService() driven.TagService {
	return &tagStore{store: s}
}

// ItemImporter returns a driven.ItemImporter backed by this store.
func (s *Store) ItemImporter() driven.ItemImporter {
	return &importStore{store: s}
}

// ==================== Item Store ====================

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// SaveItem stores or updates an item and replaces its tag set.
func (s *itemStore) SaveItem(ctx context.Context, item *domain.Item) error {
	if item == nil || item.GUID == "" {
		return fmt.Errorf("%w: item requires a guid", domain.ErrInvalidInput)
	}
	if err := s.store.open(); err != nil {
		return err
	}

	props := item.Properties
	if props == nil {
		props = map[string]string{}
	}
	propsJSON, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshalling properties: %w", err)
	}
	position := item.Position
	if position == nil {
		position = []int{}
	}
	positionJSON, err := json.Marshal(position)
	if err != nil {
		return fmt.Errorf("marshalling position: %w", err)
	}

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (guid, name, mime_type, digest, size, text, encrypted, excluded,
				properties, position, position_key, native_path, printed_path, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(guid) DO UPDATE SET
				name = excluded.name,
				mime_type = excluded.mime_type,
				digest = excluded.digest,
				size = excluded.size,
				text = excluded.text,
				encrypted = excluded.encrypted,
				excluded = excluded.excluded,
				properties = excluded.properties,
				position = excluded.position,
				position_key = excluded.position_key,
				native_path = excluded.native_path,
				printed_path = excluded.printed_path,
				updated_at = excluded.updated_at
		`, item.GUID, item.Name, item.MimeType, nullString(strings.ToLower(item.Digest)), item.Size,
			item.Text, boolToInt(item.Encrypted), boolToInt(item.Excluded),
			string(propsJSON), string(positionJSON), item.PositionKey(),
			nullString(item.NativePath), nullString(item.PrintedPath),
			formatTime(item.CreatedAt), formatTime(item.UpdatedAt))
		if err != nil {
			return fmt.Errorf("saving item: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM item_tags WHERE item_guid = ?", item.GUID); err != nil {
			return fmt.Errorf("clearing tags: %w", err)
		}
		for _, tag := range item.Tags {
			if err := insertTag(ctx, tx, tag); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO item_tags (item_guid, tag_name) VALUES (?, ?)",
				item.GUID, tag); err != nil {
				return fmt.Errorf("tagging item: %w", err)
			}
		}
		return nil
	})
}

// GetItem retrieves an item by GUID.
func (s *itemStore) GetItem(ctx context.Context, guid string) (*domain.Item, error) {
	if err := s.store.open(); err != nil {
		return nil, err
	}
	row := s.store.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items i WHERE i.guid = ?", guid)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	return item, nil
}

// Search returns every item matching the query in position order.
func (s *itemStore) Search(ctx context.Context, query domain.ItemQuery) ([]domain.Item, error) {
	if err := s.store.open(); err != nil {
		return nil, err
	}
	where, args := buildWhere(query)
	stmt := "SELECT " + itemColumns + " FROM items i"
	if where != "" {
		stmt += " WHERE " + where
	}
	stmt += " ORDER BY i.position_key, i.guid"

	rows, err := s.store.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item //nolint:prealloc // size unknown from query
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// SetExcluded marks items as excluded or included.
func (s *itemStore) SetExcluded(ctx context.Context, guids []string, excluded bool) (int, error) {
	if err := s.store.open(); err != nil {
		return 0, err
	}
	changed := 0
	err := s.store.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"UPDATE items SET excluded = ?, updated_at = ? WHERE guid = ? AND excluded != ?")
		if err != nil {
			return fmt.Errorf("preparing update: %w", err)
		}
		defer stmt.Close()

		now := formatTime(time.Now())
		flag := boolToInt(excluded)
		for _, guid := range guids {
			res, err := stmt.ExecContext(ctx, flag, now, guid, flag)
			if err != nil {
				return fmt.Errorf("updating %s: %w", guid, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			changed += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// Close closes the underlying store.
func (s *itemStore) Close() error {
	return s.store.Close()
}

// buildWhere translates a query into a SQL condition and its arguments.
func buildWhere(q domain.ItemQuery) (string, []any) {
	var conds []string
	var args []any

	if len(q.MimeTypes) > 0 {
		conds = append(conds, "i.mime_type IN ("+placeholders(len(q.MimeTypes))+")")
		for _, m := range q.MimeTypes {
			args = append(args, m)
		}
	}
	if q.HasText != nil {
		if *q.HasText {
			conds = append(conds, "i.text != ''")
		} else {
			conds = append(conds, "i.text = ''")
		}
	}
	if q.Encrypted != nil {
		conds = append(conds, "i.encrypted = ?")
		args = append(args, boolToInt(*q.Encrypted))
	}
	if q.Size != nil {
		conds = append(conds, "i.size >= ? AND i.size < ?")
		args = append(args, q.Size.Min, q.Size.Max)
	}
	if q.Digest != "" {
		conds = append(conds, "i.digest = ?")
		args = append(args, strings.ToLower(q.Digest))
	}
	if q.Tag != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM item_tags t WHERE t.item_guid = i.guid AND t.tag_name = ?)")
		args = append(args, q.Tag)
	}
	if q.WithoutExcluded {
		conds = append(conds, "i.excluded = 0")
	}

	return strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var digest, nativePath, printedPath, tags sql.NullString
	var encrypted, excluded int
	var propsJSON, positionJSON, createdAt, updatedAt string

	if err := row.Scan(&item.GUID, &item.Name, &item.MimeType, &digest, &item.Size, &item.Text,
		&encrypted, &excluded, &propsJSON, &positionJSON, &nativePath, &printedPath,
		&createdAt, &updatedAt, &tags); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(propsJSON), &item.Properties); err != nil {
		return nil, fmt.Errorf("unmarshaling properties: %w", err)
	}
	if len(item.Properties) == 0 {
		item.Properties = nil
	}
	if err := json.Unmarshal([]byte(positionJSON), &item.Position); err != nil {
		return nil, fmt.Errorf("unmarshaling position: %w", err)
	}
	if len(item.Position) == 0 {
		item.Position = nil
	}

	item.Digest = digest.String
	item.Encrypted = encrypted != 0
	item.Excluded = excluded != 0
	item.NativePath = nativePath.String
	item.PrintedPath = printedPath.String
	item.CreatedAt = parseTime(createdAt)
	item.UpdatedAt = parseTime(updatedAt)
	if tags.Valid && tags.String != "" {
		item.Tags = strings.Split(tags.String, tagSeparator)
	}
	return &item, nil
}

// ==================== Tag Store ====================

// tagStore implements driven.TagService.
type tagStore struct {
	store *Store
}

var _ driven.TagService = (*tagStore)(nil)

// CreateTag registers a tag name.
func (s *tagStore) CreateTag(ctx context.Context, name string) error {
	if err := s.store.open(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: empty tag name", domain.ErrInvalidInput)
	}
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		return insertTag(ctx, tx, name)
	})
}

// AddTag applies the tag to every item in the batch in one transaction.
func (s *tagStore) AddTag(ctx context.Context, name string, items []domain.Item) error {
	if err := s.store.open(); err != nil {
		return err
	}
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertTag(ctx, tx, name); err != nil {
			return err
		}
		exists, err := tx.PrepareContext(ctx, "SELECT 1 FROM items WHERE guid = ?")
		if err != nil {
			return fmt.Errorf("preparing lookup: %w", err)
		}
		defer exists.Close()
		insert, err := tx.PrepareContext(ctx,
			"INSERT OR IGNORE INTO item_tags (item_guid, tag_name) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer insert.Close()

		for _, item := range items {
			var one int
			if err := exists.QueryRowContext(ctx, item.GUID).Scan(&one); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("tagging %s: %w", item.GUID, domain.ErrNotFound)
				}
				return fmt.Errorf("tagging %s: %w", item.GUID, err)
			}
			if _, err := insert.ExecContext(ctx, item.GUID, name); err != nil {
				return fmt.Errorf("tagging %s: %w", item.GUID, err)
			}
		}
		return nil
	})
}

// RemoveTag removes the tag from every item in the batch in one transaction.
func (s *tagStore) RemoveTag(ctx context.Context, name string, items []domain.Item) error {
	if err := s.store.open(); err != nil {
		return err
	}
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, "DELETE FROM item_tags WHERE item_guid = ? AND tag_name = ?")
		if err != nil {
			return fmt.Errorf("preparing delete: %w", err)
		}
		defer stmt.Close()
		for _, item := range items {
			if _, err := stmt.ExecContext(ctx, item.GUID, name); err != nil {
				return fmt.Errorf("untagging %s: %w", item.GUID, err)
			}
		}
		return nil
	})
}

func insertTag(ctx context.Context, tx *sql.Tx, name string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (name, created_at) VALUES (?, ?)", name, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("creating tag %q: %w", name, err)
	}
	return nil
}

// ==================== Import Store ====================

// importStore implements driven.ItemImporter.
type importStore struct {
	store *Store
}

var _ driven.ItemImporter = (*importStore)(nil)

// ImportStructured copies the rendition into the store's printed directory
// and records it on the item.
func (s *importStore) ImportStructured(ctx context.Context, item domain.Item, path string) error {
	if err := s.store.open(); err != nil {
		return err
	}
	dir := s.store.PrintedDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating printed directory: %w", err)
	}
	dst := filepath.Join(dir, item.GUID+filepath.Ext(path))
	if err := fileutil.CopyFile(path, dst); err != nil {
		return fmt.Errorf("copying rendition: %w", err)
	}

	if err := s.update(ctx, item.GUID, "printed_path", dst); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// ReplaceTextFromFile replaces the item's text with the decoded file contents.
func (s *importStore) ReplaceTextFromFile(ctx context.Context, item domain.Item, path, encoding string) error {
	if err := s.store.open(); err != nil {
		return err
	}
	text, err := textfile.Read(path, encoding)
	if err != nil {
		return err
	}
	return s.update(ctx, item.GUID, "text", text)
}

// update sets one column on an item. column is always a constant.
func (s *importStore) update(ctx context.Context, guid, column string, value any) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE items SET "+column+" = ?, updated_at = ? WHERE guid = ?", //nolint:gosec // G202: column is a constant.
		value, formatTime(time.Now()), guid)
	if err != nil {
		return fmt.Errorf("updating %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("updating %s: %w", guid, domain.ErrNotFound)
	}
	return nil
}
