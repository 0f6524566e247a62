// Package ring provides a byte ring buffer backed by a mirrored mapping.
//
// A conventional ring buffer has to split reads and writes that cross the
// wrap point into two segments. Because a mirror maps the same storage twice
// into adjacent address ranges, any window of up to the full capacity is
// addressable as a single contiguous slice, no matter where it starts. Claim
// and Peek exploit this: they hand out plain []byte windows that may
// physically wrap, and callers never see the seam.
//
// # Usage
//
//	m, err := mirrormap.New(os.Getpagesize())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer m.Close()
//
//	b, err := ring.New(m)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	w, _ := b.Claim(5)
//	copy(w, "hello")
//	b.Commit(5)
//
//	r, _ := b.Peek(5)
//	fmt.Println(string(r)) // hello
//	b.Consume(5)
//
// # Thread Safety
//
// Buffer is not safe for concurrent use. Callers that share a Buffer across
// goroutines must provide their own synchronization. The mirror must remain
// open for as long as the buffer is in use.
package ring
