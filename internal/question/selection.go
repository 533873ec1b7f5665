package question

import "strings"

// DefaultPageSize is the listing window when none is configured.
const DefaultPageSize = 10

// Paginate returns the 1-based page of all, which must already be ordered by
// id. Pages past the end yield an empty, non-nil slice.
func Paginate(all []Question, page, pageSize int) []Question {
	start, ok := PageStart(page, pageSize, len(all))
	if !ok {
		return []Question{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	end := min(start+pageSize, len(all))
	return all[start:end]
}

// PageStart is the zero-based index of the first item on a 1-based page of
// a collection holding total items. ok is false when the page starts at or
// past total; the comparison is done in page units so huge pages cannot
// overflow.
func PageStart(page, pageSize, total int) (int, bool) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if total <= 0 {
		return 0, false
	}
	pages := (total + pageSize - 1) / pageSize
	if page-1 >= pages {
		return 0, false
	}
	return (page - 1) * pageSize, true
}

// NormalizeSearchTerm trims and lower-cases term, rejecting blank input.
func NormalizeSearchTerm(term string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return "", ErrEmptySearchTerm
	}
	return normalized, nil
}

// Search keeps questions whose text contains term, ignoring case. Answers are
// not searched.
func Search(all []Question, term string) ([]Question, error) {
	normalized, err := NormalizeSearchTerm(term)
	if err != nil {
		return nil, err
	}
	out := []Question{}
	for _, q := range all {
		if strings.Contains(strings.ToLower(q.Question), normalized) {
			out = append(out, q)
		}
	}
	return out, nil
}

// FilterByCategory keeps questions referencing category, preserving order.
func FilterByCategory(all []Question, category int64) []Question {
	out := []Question{}
	for _, q := range all {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Candidates is the quiz candidate set: questions in category whose id is
// not in previous.
func Candidates(all []Question, category int64, previous []int64) []Question {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}
	out := []Question{}
	for _, q := range all {
		if q.Category != category {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		out = append(out, q)
	}
	return out
}

// PickUnseen draws one candidate uniformly at random. intn must return a
// value in [0, n). A nil result means the category is exhausted.
func PickUnseen(all []Question, category int64, previous []int64, intn func(n int) int) *Question {
	candidates := Candidates(all, category, previous)
	if len(candidates) == 0 {
		return nil
	}
	picked := candidates[intn(len(candidates))]
	return &picked
}
