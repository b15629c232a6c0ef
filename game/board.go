package game

import (
	"fmt"
	"strings"
)

const Size = 8

// Cell is the content of one board square.
type Cell int8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Cell) symbol() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

// Square is a board coordinate. Col and Row are 1-based, in [1, Size].
type Square struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (s Square) InBounds() bool {
	return s.Col >= 1 && s.Col <= Size && s.Row >= 1 && s.Row <= Size
}

// Index is the row-major position of the square in a flattened board.
// Only meaningful for squares that are InBounds.
func (s Square) Index() int {
	return (s.Row-1)*Size + (s.Col - 1)
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Col, s.Row)
}

// direction is a step on the board expressed in rows and columns.
type direction struct {
	dRow, dCol int
}

var directions = [8]direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (s Square) step(d direction) Square {
	return Square{Col: s.Col + d.dCol, Row: s.Row + d.dRow}
}

// Board holds the cells indexed by [row-1][col-1]. It is a value type: plain
// assignment copies it.
type Board [Size][Size]Cell

// NewBoard returns the standard opening with the four center discs.
func NewBoard() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1], b[mid][mid] = Black, Black
	b[mid-1][mid], b[mid][mid-1] = White, White
	return b
}

// ParseBoard builds a board from Size rows of Size characters, top row first.
// '.', '0' and '-' are empty; 'B', 'X' and '1' are Black; 'W', 'O' and '2' are White.
func ParseBoard(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("board needs %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != Size {
			return b, fmt.Errorf("row %d needs %d cells, got %d", r+1, Size, len(row))
		}
		for c := 0; c < Size; c++ {
			switch row[c] {
			case '.', '0', '-':
				b[r][c] = Empty
			case 'B', 'b', 'X', 'x', '1':
				b[r][c] = Black
			case 'W', 'w', 'O', 'o', '2':
				b[r][c] = White
			default:
				return b, fmt.Errorf("row %d col %d: unknown cell %q", r+1, c+1, row[c])
			}
		}
	}
	return b, nil
}

// At returns the cell at s. Squares off the board read as Empty.
func (b *Board) At(s Square) Cell {
	if !s.InBounds() {
		return Empty
	}
	return b[s.Row-1][s.Col-1]
}

func (b *Board) set(s Square, c Cell) {
	b[s.Row-1][s.Col-1] = c
}

// Count returns the number of cells holding c.
func (b *Board) Count(c Cell) int {
	n := 0
	for r := range b {
		for _, cell := range b[r] {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// Rows renders the board in the format accepted by ParseBoard.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for r := range b {
		line := make([]byte, Size)
		for c, cell := range b[r] {
			line[c] = cell.symbol()
		}
		rows[r] = string(line)
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

// Squares lists every square in row-major order.
func Squares() []Square {
	squares := make([]Square, 0, Size*Size)
	for row := 1; row <= Size; row++ {
		for col := 1; col <= Size; col++ {
			squares = append(squares, Square{Col: col, Row: row})
		}
	}
	return squares
}
