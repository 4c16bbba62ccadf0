package filter

// Page sizes of the catalog views.
const (
	RecipesPageSize = 9
	GalleryPageSize = 12
)

// Pager tracks how many pages of a result list are shown. Pages only grow
// until the next Reset.
type Pager struct {
	PageSize int
	Shown    int
}

func NewPager(size int) Pager {
	if size < 1 {
		size = 1
	}
	return Pager{PageSize: size, Shown: 1}
}

func (p *Pager) Reset() {
	p.Shown = 1
}

// Visible returns how many of n results are shown.
func (p Pager) Visible(n int) int {
	return min(p.PageSize*p.Shown, n)
}

func (p Pager) HasMore(n int) bool {
	return p.PageSize*p.Shown < n
}

// LoadMore shows one more page when results remain and reports whether it
// did.
func (p *Pager) LoadMore(n int) bool {
	if !p.HasMore(n) {
		return false
	}
	p.Shown++
	return true
}
