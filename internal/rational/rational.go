// Package rational finds frame dimensions whose aspect ratio survives the
// 8-bit rational approximation encoders apply to sample aspect ratios.
package rational

// maxTerm bounds both terms of an approximated fraction.
const maxTerm = 255

// Reducible reports whether num/den approximates, within maxTerm, to a
// coprime fraction with both terms positive. The walk mirrors libavutil's
// av_reduce: reduce by the gcd, then follow continued-fraction convergents
// until one exceeds maxTerm and settle on the best bounded semiconvergent.
func Reducible(num, den int) bool {
	if num <= 0 || den <= 0 {
		return false
	}
	a0 := [2]int{0, 1}
	a1 := [2]int{1, 0}

	if g := gcd(num, den); g > 1 {
		num /= g
		den /= g
	}
	if num <= maxTerm && den <= maxTerm {
		a1 = [2]int{num, den}
		den = 0
	}

	for den != 0 {
		x := num / den
		nextDen := num - den*x
		a2n := x*a1[0] + a0[0]
		a2d := x*a1[1] + a0[1]

		if a2n > maxTerm || a2d > maxTerm {
			if a1[0] != 0 {
				x = (maxTerm - a0[0]) / a1[0]
			}
			if a1[1] != 0 {
				x = min(x, (maxTerm-a0[1])/a1[1])
			}
			if den*(2*x*a1[1]+a0[1]) > num*a1[1] {
				a1 = [2]int{x*a1[0] + a0[0], x*a1[1] + a0[1]}
			}
			break
		}

		a0 = a1
		a1 = [2]int{a2n, a2d}
		num = den
		den = nextDen
	}

	return gcd(a1[0], a1[1]) <= 1 &&
		a1[0] <= maxTerm && a1[1] <= maxTerm &&
		a1[0] > 0 && a1[1] > 0
}

// MinSafeMargin returns the smallest i in [1, max(width, height)) for which
// both i/height and width/i are Reducible. It returns 0 when no such i exists.
func MinSafeMargin(width, height int) int {
	for i := 1; i < max(width, height); i++ {
		if Reducible(i, height) && Reducible(width, i) {
			return i
		}
	}
	return 0
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
