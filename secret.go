package pwnedcheck

// WipeBytes zeroes a byte slice. Go gives no guarantee that the runtime has
// not made other copies, but zeroing the working buffer synchronously keeps
// the plaintext exposure window as small as the language allows, and does
// not leave the wipe to the garbage collector.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
