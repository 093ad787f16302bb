package service

const maxPageSize = 50

// clampPage normalises a 1-based page number.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// clampLimit normalises a page size into [1, maxPageSize], substituting def
// when the caller sent nothing.
func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
