package inline

// rawHandler copies text between registered raw delimiters through
// untouched. ch has just been pulled.
func (c *Compiler) rawHandler(ch int) bool {
	if c.sh.raw.Len() == 0 {
		return false
	}

	in := &c.in
	m, ok := c.sh.raw.Find(in.Slice(in.Tell()-1, in.Len()))
	if !ok {
		return false
	}

	// Back-to-back delimiters stand for one literal delimiter character.
	if m.Literal() {
		c.q.Char(byte(ch))
		in.Shift(1)
		return true
	}

	c.q.String(m.Entry.Open)
	c.q.Write(m.Payload)
	c.q.String(m.Entry.Close)
	in.Shift(m.Length - 1)
	return true
}
