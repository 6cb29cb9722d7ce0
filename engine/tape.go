package engine

// Tape is the machine memory: byte cells addressed by a single cursor.
// It starts with one zero cell, grows to the right on demand and never shrinks.
type Tape struct {
	cells  []byte
	cursor int
}

func NewTape() *Tape {
	return &Tape{cells: []byte{0}}
}

// Right moves the cursor n cells right, appending zero cells as needed
func (t *Tape) Right(n int) {
	t.cursor += n
	if need := t.cursor - len(t.cells) + 1; need > 0 {
		t.cells = append(t.cells, make([]byte, need)...)
	}
}

// Left moves the cursor n cells left. It returns false and leaves the cursor
// untouched if there is not enough room
func (t *Tape) Left(n int) bool {
	if n > t.cursor {
		return false
	}
	t.cursor -= n
	return true
}

func (t *Tape) Add(n byte) {
	t.cells[t.cursor] += n
}

func (t *Tape) Sub(n byte) {
	t.cells[t.cursor] -= n
}

func (t *Tape) Cell() byte {
	return t.cells[t.cursor]
}

func (t *Tape) SetCell(b byte) {
	t.cells[t.cursor] = b
}

func (t *Tape) Cursor() int {
	return t.cursor
}

func (t *Tape) Len() int {
	return len(t.cells)
}

// Bytes returns a copy of the cells
func (t *Tape) Bytes() []byte {
	ret := make([]byte, len(t.cells))
	copy(ret, t.cells)
	return ret
}
