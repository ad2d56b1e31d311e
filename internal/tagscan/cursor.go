package tagscan

// cursor представляет позицию внутри строки
type cursor struct {
	text string
	off  int
}

func (c *cursor) eof() bool {
	return c.off >= len(c.text)
}

// eat consumes b when it is the current byte.
func (c *cursor) eat(b byte) bool {
	if c.eof() || c.text[c.off] != b {
		return false
	}
	c.off++
	return true
}

// eatWhile consumes bytes while pred holds and returns how many were taken.
func (c *cursor) eatWhile(pred func(byte) bool) int {
	start := c.off
	for !c.eof() && pred(c.text[c.off]) {
		c.off++
	}
	return c.off - start
}

// isSpace matches the ASCII whitespace class: space, \t, \n, \v, \f, \r.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isNameByte(b byte) bool {
	return b != '>' && b != '/' && !isSpace(b)
}
