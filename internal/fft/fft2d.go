package fft

// Forward2D transforms a w×h row-major buffer in place by decomposing the
// 2D DFT into row transforms followed by column transforms.
func Forward2D(buf []complex128, w, h int) {
	apply2D(buf, w, h, false)
}

// Inverse2D inverts Forward2D, scaling by 1/(w*h).
func Inverse2D(buf []complex128, w, h int) {
	apply2D(buf, w, h, true)
}

func apply2D(buf []complex128, w, h int, inverse bool) {
	if w < 1 || h < 1 || len(buf) < w*h {
		return
	}

	rowT := New(w)
	for y := 0; y < h; y++ {
		row := buf[y*w : (y+1)*w]
		if inverse {
			rowT.Inverse(row)
		} else {
			rowT.Forward(row)
		}
	}

	colT := New(h)
	col := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = buf[y*w+x]
		}
		if inverse {
			colT.Inverse(col)
		} else {
			colT.Forward(col)
		}
		for y := 0; y < h; y++ {
			buf[y*w+x] = col[y]
		}
	}
}
