package edit

import (
	"time"
	"unicode"

	"github.com/quillcode/quill/internal/cursor"
)

// Kind discriminates what sort of keystroke a Coalescer is accumulating.
type Kind uint8

const (
	KindNone Kind = iota
	KindInsert
	KindBackspace
	KindDelete
)

// Timeout is the wall-clock span after which the coalescing buffer must be
// flushed, per spec.md §3/§4.3 (~1 second).
const Timeout = time.Second

// Coalescer is the Action engine's pending single-keystroke Edit, merged
// until a boundary condition flushes it: a key of a different kind, a
// word-boundary crossing, the ~1s timeout, or an explicit flush request.
// It is a single value owned by the Engine and polled from the same task
// that consumes keys, so it needs no locking (spec.md §9).
type Coalescer struct {
	active bool
	kind   Kind

	// pos is the Record's anchor: for Insert and Delete it stays fixed
	// (text grows to its right); for Backspace it moves left by one char
	// with every coalesced keystroke (the removed span grows to its left).
	pos cursor.Position

	text     string
	lastRune rune
	stamp    time.Time

	selectBefore *cursor.Selection
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func sameWordClass(a, b rune) bool { return isWordChar(a) == isWordChar(b) }

func (c *Coalescer) timedOut() bool {
	return !c.stamp.IsZero() && time.Since(c.stamp) > Timeout
}

// Active reports whether a coalesced edit is in progress.
func (c *Coalescer) Active() bool { return c.active }

// PushInsert accumulates one inserted char typed at pos (the cursor
// position immediately before this keystroke). It returns a completed
// Record when the keystroke did not continue the in-progress edit — the
// caller must push that Record onto the done stack before this keystroke
// starts a new one, which PushInsert has already done internally.
func (c *Coalescer) PushInsert(pos cursor.Position, ch rune, sel *cursor.Selection) *Record {
	if c.active && c.kind == KindInsert && !c.timedOut() &&
		pos.Line == c.pos.Line && pos.Char == c.pos.Char+charCount(c.text) &&
		sameWordClass(c.lastRune, ch) {
		c.text += string(ch)
		c.lastRune = ch
		c.stamp = time.Now()
		return nil
	}
	flushed := c.flushInternal()
	c.active = true
	c.kind = KindInsert
	c.pos = pos
	c.text = string(ch)
	c.lastRune = ch
	c.stamp = time.Now()
	c.selectBefore = sel
	return flushed
}

// PushBackspace accumulates one char deleted backward: removedChar sat
// immediately before posBeforeDeletion, and resultingPos is
// posBeforeDeletion shifted one char left.
func (c *Coalescer) PushBackspace(posBeforeDeletion cursor.Position, removedChar rune, resultingPos cursor.Position, sel *cursor.Selection) *Record {
	if c.active && c.kind == KindBackspace && !c.timedOut() &&
		posBeforeDeletion == c.pos && sameWordClass(c.lastRune, removedChar) {
		c.text = string(removedChar) + c.text
		c.pos = resultingPos
		c.lastRune = removedChar
		c.stamp = time.Now()
		return nil
	}
	flushed := c.flushInternal()
	c.active = true
	c.kind = KindBackspace
	c.pos = resultingPos
	c.text = string(removedChar)
	c.lastRune = removedChar
	c.stamp = time.Now()
	c.selectBefore = sel
	return flushed
}

// PushDelete accumulates one char deleted forward at a fixed cursor
// position.
func (c *Coalescer) PushDelete(pos cursor.Position, removedChar rune, sel *cursor.Selection) *Record {
	if c.active && c.kind == KindDelete && !c.timedOut() &&
		pos == c.pos && sameWordClass(c.lastRune, removedChar) {
		c.text += string(removedChar)
		c.lastRune = removedChar
		c.stamp = time.Now()
		return nil
	}
	flushed := c.flushInternal()
	c.active = true
	c.kind = KindDelete
	c.pos = pos
	c.text = string(removedChar)
	c.lastRune = removedChar
	c.stamp = time.Now()
	c.selectBefore = sel
	return flushed
}

// Flush completes the in-progress edit (if any) and clears the buffer.
// Called on any non-coalescing action, on the ~1s timeout at the next
// poll, or when the engine is asked for pending change events.
func (c *Coalescer) Flush() *Record {
	return c.flushInternal()
}

// PollTimeout flushes the buffer if its clock has exceeded Timeout,
// without requiring a new keystroke to trigger it. Callers invoke this
// once per frame alongside the LSP context poll.
func (c *Coalescer) PollTimeout() *Record {
	if c.active && c.timedOut() {
		return c.flushInternal()
	}
	return nil
}

func (c *Coalescer) flushInternal() *Record {
	if !c.active {
		return nil
	}
	var r Record
	switch c.kind {
	case KindInsert:
		r = NewRecord(c.pos, "", c.text)
	case KindBackspace, KindDelete:
		r = NewRecord(c.pos, c.text, "")
	default:
		c.reset()
		return nil
	}
	r.SelectBefore = c.selectBefore
	c.reset()
	return &r
}

func (c *Coalescer) reset() {
	*c = Coalescer{}
}
