package layout

// RowLabel returns the letter label for a zero-based row index.
// Rows past Z continue spreadsheet style: AA, AB, ..., AZ, BA.
func RowLabel(index int) string {
	if index < 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// RowIndex is the inverse of RowLabel. It returns -1 for anything that is
// not an upper-case label.
func RowIndex(label string) int {
	if label == "" {
		return -1
	}
	n := 0
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1
}
