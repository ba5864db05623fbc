package render

import "strconv"

// gutterWidth returns the column width needed to print every line number in
// a document of lineCount lines, at least minWidth wide plus one column of
// padding, grounded on the teacher's gutter.CalculateWidth.
func gutterWidth(lineCount, minWidth int) int {
	digits := len(strconv.Itoa(max(lineCount, 1)))
	if digits < minWidth {
		digits = minWidth
	}
	return digits + 1
}

// paintGutter writes a right-aligned 1-based line number into the gutter
// columns of row, styled th.GutterLine when current is true.
func paintGutter(sink Sink, row, width int, number int, current bool, th Theme) {
	style := th.GutterText
	if current {
		style = th.GutterLine
	}
	s := strconv.Itoa(number)
	pad := width - 1 - len(s)
	col := 0
	for ; pad > 0; pad-- {
		sink.SetCell(row, col, Cell{Text: " ", Width: 1, Style: style})
		col++
	}
	for _, r := range s {
		sink.SetCell(row, col, Cell{Text: string(r), Width: 1, Style: style})
		col++
	}
	sink.SetCell(row, col, Cell{Text: " ", Width: 1, Style: style})
}
