package service

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage clamps caller-supplied paging to sane bounds.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
