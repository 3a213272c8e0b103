package pipeline

// Mid-gray pivot for the contrast post-pass.
const midGray = 128.0

// ContrastBoost applies a signed contrast factor around mid-gray to the RGB
// channels of buf in place. Alpha passes through untouched. A factor of 1
// is a no-op; the caller's halo limiter keeps it gentle (typically <= 1.1)
// so the sharpened output does not overshoot into visible ringing.
func ContrastBoost(buf []byte, factor float32) {
	if factor == 1 {
		return
	}
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = clampUint8((float32(buf[i+0])-midGray)*factor + midGray)
		buf[i+1] = clampUint8((float32(buf[i+1])-midGray)*factor + midGray)
		buf[i+2] = clampUint8((float32(buf[i+2])-midGray)*factor + midGray)
	}
}
