package core

import (
	"strings"
	"unicode"
)

const (
	legitimacyLabelToken = "Legitimacy"
	legitimateValueToken = "Legitimate"
)

// labelTrimSet holds the bullet markers the model tends to put in front of a label.
const labelTrimSet = "-–— \t"

// Parser turns a model answer into display records.
//
// The zero value matches the legitimacy verdict by substring, so
// "Legitimacy: Not Legitimate" is emphasised. StrictLegitimacy skips
// occurrences of "Legitimate" that are directly negated, as in
// "Not Legitimate", "Not-Legitimate", "Non-Legitimate" or "not a Legitimate".
type Parser struct {
	StrictLegitimacy bool
}

// ParseResponse parses raw with the default Parser.
func ParseResponse(raw string) []DisplayRecord {
	return Parser{}.Parse(raw)
}

// Parse splits raw into one record per line. It never fails: lines without
// a colon become "Unknown" records and the empty string yields no records.
func (p Parser) Parse(raw string) []DisplayRecord {
	if raw == "" {
		return []DisplayRecord{}
	}

	lines := strings.Split(raw, "\n")
	records := make([]DisplayRecord, 0, len(lines))
	for i, line := range lines {
		records = append(records, p.parseLine(i, line))
	}
	return records
}

func (p Parser) parseLine(idx int, line string) DisplayRecord {
	label := UnknownLabel
	value := strings.TrimSpace(line)

	// Only the first colon separates label from value; times and URLs keep theirs.
	if before, after, found := strings.Cut(line, ":"); found {
		label = strings.TrimSpace(before)
		value = strings.TrimSpace(after)
	}

	emphasis := EmphasisNone
	if strings.Contains(label, legitimacyLabelToken) && p.legitimateValue(value) {
		emphasis = EmphasisLegitimate
	}

	column := ColumnLeft
	if idx%2 == 1 {
		column = ColumnRight
	}

	return DisplayRecord{
		Label:    normalizeLabel(label),
		Value:    value,
		Emphasis: emphasis,
		Column:   column,
	}
}

func (p Parser) legitimateValue(value string) bool {
	if !p.StrictLegitimacy {
		return strings.Contains(value, legitimateValueToken)
	}

	rest := value
	offset := 0
	for {
		i := strings.Index(rest, legitimateValueToken)
		if i < 0 {
			return false
		}
		if !negated(value[:offset+i]) {
			return true
		}
		offset += i + len(legitimateValueToken)
		rest = value[offset:]
	}
}

// negated reports whether the text right before a verdict token negates it.
// Words are split on whitespace and hyphens, and an article between the
// negation and the token is skipped.
func negated(prefix string) bool {
	words := strings.FieldsFunc(strings.ToLower(prefix), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if n := len(words); n > 0 && (words[n-1] == "a" || words[n-1] == "an") {
		words = words[:n-1]
	}
	if len(words) == 0 {
		return false
	}
	last := words[len(words)-1]
	return last == "not" || last == "non"
}

// normalizeLabel strips bullet dashes and surrounding whitespace from a label.
func normalizeLabel(label string) string {
	return strings.TrimSpace(strings.TrimLeft(label, labelTrimSet))
}

// Columns splits records into the left and right column, keeping their order.
func Columns(records []DisplayRecord) (left, right []DisplayRecord) {
	left = []DisplayRecord{}
	right = []DisplayRecord{}
	for _, r := range records {
		if r.Column == ColumnRight {
			right = append(right, r)
		} else {
			left = append(left, r)
		}
	}
	return left, right
}
