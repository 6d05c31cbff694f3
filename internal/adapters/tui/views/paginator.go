package views

const defaultPageSize = 10

// Paginator tracks a cursor over a list of rows. Pages are fixed windows of
// size rows, so the visible window is always derived from the cursor.
type Paginator struct {
	size   int
	total  int
	cursor int
}

// NewPaginator returns a paginator showing size rows per page
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = defaultPageSize
	}
	return &Paginator{size: size}
}

// SetPageSize changes the rows per page. Non-positive sizes are ignored.
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.size = size
	}
}

func (p *Paginator) PageSize() int { return p.size }

// SetTotal sets the number of rows and pulls the cursor back onto the list
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = p.clamp(p.cursor)
}

func (p *Paginator) Cursor() int { return p.cursor }

func (p *Paginator) SetCursor(pos int) {
	p.cursor = p.clamp(pos)
}

// CursorUp reports whether the cursor moved
func (p *Paginator) CursorUp() bool {
	return p.move(p.cursor - 1)
}

// CursorDown reports whether the cursor moved
func (p *Paginator) CursorDown() bool {
	return p.move(p.cursor + 1)
}

// PageOffset is the index of the first row on the cursor's page
func (p *Paginator) PageOffset() int {
	return p.cursor - p.cursor%p.size
}

// VisibleRange returns the half-open row range of the cursor's page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.PageOffset()
	return start, min(start+p.size, p.total)
}

func (p *Paginator) CursorInPage() int {
	return p.cursor % p.size
}

// TotalPages is at least 1 so an empty list still renders "1/1"
func (p *Paginator) TotalPages() int {
	return max(1, (p.total+p.size-1)/p.size)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.size + 1
}

// NextPage puts the cursor on the first row of the following page
func (p *Paginator) NextPage() bool {
	next := p.PageOffset() + p.size
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage puts the cursor on the first row of the preceding page
func (p *Paginator) PrevPage() bool {
	offset := p.PageOffset()
	if offset == 0 {
		return false
	}
	p.cursor = offset - p.size
	return true
}

func (p *Paginator) Reset() {
	p.cursor, p.total = 0, 0
}

func (p *Paginator) move(pos int) bool {
	if pos < 0 || pos >= p.total {
		return false
	}
	p.cursor = pos
	return true
}

func (p *Paginator) clamp(pos int) int {
	return max(0, min(pos, p.total-1))
}
