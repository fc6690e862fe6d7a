package navigator

// Viewport is the window of rows currently on screen.
type Viewport struct {
	Offset int
	Height int
}

// EnsureVisible scrolls the least amount needed to show row i of n rows.
// A row above the window becomes the top row; a row below it becomes the
// bottom row.
func (v *Viewport) EnsureVisible(i, n int) {
	if v.Height <= 0 {
		v.Offset = 0
		return
	}
	if i < v.Offset {
		v.Offset = i
	} else if i >= v.Offset+v.Height {
		v.Offset = i - v.Height + 1
	}
	if maxOffset := n - v.Height; v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// Window returns the half-open range of rows on screen out of n.
func (v Viewport) Window(n int) (start, end int) {
	if v.Height <= 0 {
		return 0, n
	}
	start = v.Offset
	if start > n {
		start = n
	}
	end = start + v.Height
	if end > n {
		end = n
	}
	return start, end
}

// RowAt maps screen row y (0 is the first list row) to a row index out of n.
func (v Viewport) RowAt(y, n int) (int, bool) {
	start, end := v.Window(n)
	i := start + y
	if y < 0 || i >= end {
		return 0, false
	}
	return i, true
}
