package hashing

import "testing"

var benchData = []byte("benchmark test data for hashing")

func BenchmarkMaphash(b *testing.B) {
	h := NewMaphash()

	for range b.N {
		_ = h.Hash(benchData)
	}
}

func BenchmarkFNV1a(b *testing.B) {
	for range b.N {
		_ = FNV1a{}.Hash(benchData)
	}
}

func BenchmarkXXHash(b *testing.B) {
	for range b.N {
		_ = XXHash{}.Hash(benchData)
	}
}
