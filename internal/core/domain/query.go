package domain

import (
	"fmt"
	"strings"
)

// SizeRange is a half-open byte range [Min, Max).
type SizeRange struct {
	Min int64
	Max int64
}

// Contains reports whether size falls inside the range.
func (r SizeRange) Contains(size int64) bool {
	return size >= r.Min && size < r.Max
}

// ItemQuery is a structured selection over the collection.
// Zero-valued fields do not constrain the result.
type ItemQuery struct {
	// MimeTypes restricts results to any of the listed types.
	MimeTypes []string

	// HasText restricts results by whether extracted text is present.
	HasText *bool

	// Encrypted restricts results by encryption status.
	Encrypted *bool

	// Size restricts results by digest input size.
	Size *SizeRange

	// Digest restricts results to one content hash.
	Digest string

	// Tag restricts results to items carrying the tag.
	Tag string

	// WithoutExcluded drops excluded items.
	WithoutExcluded bool
}

// Bool returns a pointer to b, for use in query literals.
func Bool(b bool) *bool {
	return &b
}

// ExcludingExcluded returns a copy of the query that drops excluded items.
func (q ItemQuery) ExcludingExcluded() ItemQuery {
	q.WithoutExcluded = true
	return q
}

// Matches evaluates the query against a single item.
func (q ItemQuery) Matches(item Item) bool {
	if len(q.MimeTypes) > 0 && !containsString(q.MimeTypes, item.MimeType) {
		return false
	}
	if q.HasText != nil && item.HasText() != *q.HasText {
		return false
	}
	if q.Encrypted != nil && item.Encrypted != *q.Encrypted {
		return false
	}
	if q.Size != nil && !q.Size.Contains(item.Size) {
		return false
	}
	if q.Digest != "" && !strings.EqualFold(q.Digest, item.Digest) {
		return false
	}
	if q.Tag != "" && !item.HasTag(q.Tag) {
		return false
	}
	if q.WithoutExcluded && item.Excluded {
		return false
	}
	return true
}

// IsEmpty reports whether the query places no constraint at all.
func (q ItemQuery) IsEmpty() bool {
	return len(q.MimeTypes) == 0 && q.HasText == nil && q.Encrypted == nil &&
		q.Size == nil && q.Digest == "" && q.Tag == "" && !q.WithoutExcluded
}

// String renders the query in the host query syntax.
func (q ItemQuery) String() string {
	var clauses []string
	switch len(q.MimeTypes) {
	case 0:
	case 1:
		clauses = append(clauses, "mime-type:"+q.MimeTypes[0])
	default:
		clauses = append(clauses, "mime-type:("+strings.Join(q.MimeTypes, " OR ")+")")
	}
	if q.HasText != nil {
		clauses = append(clauses, "contains-text:"+boolFlag(*q.HasText))
	}
	if q.Encrypted != nil {
		clauses = append(clauses, "encrypted:"+boolFlag(*q.Encrypted))
	}
	if q.Size != nil {
		clauses = append(clauses, fmt.Sprintf("digest-input-size:[%d TO %d}", q.Size.Min, q.Size.Max))
	}
	if q.Digest != "" {
		clauses = append(clauses, "md5:"+strings.ToLower(q.Digest))
	}
	if q.Tag != "" {
		clauses = append(clauses, fmt.Sprintf("tag:%q", q.Tag))
	}

	expr := strings.Join(clauses, " AND ")
	if q.WithoutExcluded {
		if expr == "" {
			return "has-exclusion:0"
		}
		return "has-exclusion:0 (" + expr + ")"
	}
	return expr
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
