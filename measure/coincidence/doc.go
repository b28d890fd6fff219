// Package coincidence estimates obfuscation key widths and record sizes using
// the index of coincidence.
//
// The index of coincidence of two equally long byte strings is the fraction
// of positions holding the same byte. Comparing data with itself shifted by a
// width w reveals periodic structure: data XORed with a repeating w-byte key
// keeps the coincidences of the plaintext at every multiple of w, while the
// coincidences at other shifts look random.
//
// # Usage
//
//	res, err := coincidence.Analyze(data)
//	for _, w := range res.Widths {
//		fmt.Printf("width %d raises index to %.3f\n", w.Width, w.Index)
//	}
//
// [Screen] gates the scan on whole-buffer entropy, skipping plain content.
package coincidence
