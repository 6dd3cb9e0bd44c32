package core

// readErrorPrefix is shown on the display when an unknown tag arrives
const readErrorPrefix = "READ ERROR: "

// appendUint appends the decimal form of n without using the fmt package
// This is a lightweight alternative for embedded systems
func appendUint(dst []byte, n uint32) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return append(dst, buf[pos:]...)
}

// readErrorMessage formats the decode error text for tag, e.g. "READ ERROR: 99"
func readErrorMessage(tag byte) []byte {
	msg := make([]byte, 0, len(readErrorPrefix)+3)
	msg = append(msg, readErrorPrefix...)
	return appendUint(msg, uint32(tag))
}
