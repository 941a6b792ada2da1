package domain

// Size thresholds used by the image rules.
const (
	Size500KB int64 = 512000
	Size1MB   int64 = 1048576
	Size5MB   int64 = 5242880

	// SizeCap bounds the size range queries.
	SizeCap int64 = 1073740824
)

// RuleKind identifies a classification rule.
type RuleKind string

// Classification rules, in the order they run.
const (
	RuleMustOCR          RuleKind = "must_ocr"
	RuleImagesOver500KB  RuleKind = "images_over_500kb"
	RuleImagesOver1MB    RuleKind = "images_over_1mb"
	RuleImagesOver5MB    RuleKind = "images_over_5mb"
	RuleWordCountAverage RuleKind = "pdf_word_count_average"
)

// AllRuleKinds returns every rule in run order.
func AllRuleKinds() []RuleKind {
	return []RuleKind{
		RuleMustOCR,
		RuleImagesOver500KB,
		RuleImagesOver1MB,
		RuleImagesOver5MB,
		RuleWordCountAverage,
	}
}

// IsValid returns true if the rule is recognised.
func (k RuleKind) IsValid() bool {
	for _, known := range AllRuleKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Description returns the progress label for the rule.
func (k RuleKind) Description() string {
	switch k {
	case RuleMustOCR:
		return "ID Must OCR Documents"
	case RuleImagesOver500KB:
		return "ID 500KB+ Images"
	case RuleImagesOver1MB:
		return "ID 1MB+ Images"
	case RuleImagesOver5MB:
		return "ID 5MB+ Images"
	case RuleWordCountAverage:
		return "Calculating Word Count Averages"
	default:
		return unknownDescription
	}
}

// RuleToggles enables or disables individual rules.
type RuleToggles struct {
	MustOCR          bool
	ImagesOver500KB  bool
	ImagesOver1MB    bool
	ImagesOver5MB    bool
	WordCountAverage bool
}

// AllRulesEnabled returns toggles with every rule on.
func AllRulesEnabled() RuleToggles {
	return RuleToggles{
		MustOCR:          true,
		ImagesOver500KB:  true,
		ImagesOver1MB:    true,
		ImagesOver5MB:    true,
		WordCountAverage: true,
	}
}

// Enabled reports whether the rule should run.
func (t RuleToggles) Enabled(kind RuleKind) bool {
	switch kind {
	case RuleMustOCR:
		return t.MustOCR
	case RuleImagesOver500KB:
		return t.ImagesOver500KB
	case RuleImagesOver1MB:
		return t.ImagesOver1MB
	case RuleImagesOver5MB:
		return t.ImagesOver5MB
	case RuleWordCountAverage:
		return t.WordCountAverage
	default:
		return false
	}
}

// Set enables or disables a rule. Unknown kinds are ignored.
func (t *RuleToggles) Set(kind RuleKind, enabled bool) {
	switch kind {
	case RuleMustOCR:
		t.MustOCR = enabled
	case RuleImagesOver500KB:
		t.ImagesOver500KB = enabled
	case RuleImagesOver1MB:
		t.ImagesOver1MB = enabled
	case RuleImagesOver5MB:
		t.ImagesOver5MB = enabled
	case RuleWordCountAverage:
		t.WordCountAverage = enabled
	}
}

// WordBucket is one average-words-per-page range. Max of zero means unbounded.
type WordBucket struct {
	Min   int
	Max   int
	Tag   TagKind
	Label string
}

// Contains reports whether the average falls in the bucket.
func (b WordBucket) Contains(average int) bool {
	if average < b.Min {
		return false
	}
	return b.Max == 0 || average <= b.Max
}

// WordBuckets are the mutually exclusive word-count-average ranges.
// An average of zero falls into none of them.
var WordBuckets = []WordBucket{
	{Min: 1, Max: 20, Tag: TagAvgWords01To20, Label: "1 to 20"},
	{Min: 21, Max: 40, Tag: TagAvgWords21To40, Label: "21 to 40"},
	{Min: 41, Max: 60, Tag: TagAvgWords41To60, Label: "41 to 60"},
	{Min: 61, Max: 80, Tag: TagAvgWords61To80, Label: "61 to 80"},
	{Min: 81, Max: 100, Tag: TagAvgWords81To100, Label: "81 to 100"},
	{Min: 101, Max: 0, Tag: TagAvgWordsOver100, Label: "over 100"},
}

// BucketFor returns the bucket holding the average, if any.
func BucketFor(average int) (WordBucket, bool) {
	for _, b := range WordBuckets {
		if b.Contains(average) {
			return b, true
		}
	}
	return WordBucket{}, false
}
