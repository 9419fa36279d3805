package util

import "golang.org/x/exp/constraints"

// Mod is the floored modulus: the result has the sign of m.
func Mod[A constraints.Integer](n, m A) A {
	r := n % m
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

// FloorDiv pairs with Mod so that n == FloorDiv(n, m)*m + Mod(n, m).
func FloorDiv[A constraints.Integer](n, m A) A {
	q := n / m
	if n%m != 0 && (n < 0) != (m < 0) {
		q--
	}
	return q
}

func Abs[A constraints.Signed](n A) A {
	if n < 0 {
		return -n
	}
	return n
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// GCD of the absolute values; GCD(0, 0) is 0.
func GCD[A constraints.Integer](a, b A) A {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
