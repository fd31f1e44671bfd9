package kernel

import (
	"fmt"
	"math/rand"
	"testing"
)

func BenchmarkMultiply(b *testing.B) {
	rng := rand.New(rand.NewSource(9))

	for _, size := range []int{16, 64, 256} {
		a := randomBuffer(rng, size*size)
		c := randomBuffer(rng, size*size)

		for name, k := range map[string]*CPUKernel{"sequential": NewSequential(), "parallel": New()} {
			b.Run(fmt.Sprintf("%s/%dx%d", name, size, size), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_, _ = k.Multiply(a, c, size, size, size)
				}
			})
		}
	}
}

func BenchmarkAddMatrix(b *testing.B) {
	rng := rand.New(rand.NewSource(10))
	x := randomBuffer(rng, 1<<20)
	y := randomBuffer(rng, 1<<20)

	for name, k := range map[string]*CPUKernel{"sequential": NewSequential(), "parallel": New()} {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(x) * 8))
			for i := 0; i < b.N; i++ {
				_, _ = k.AddMatrix(x, y)
			}
		})
	}
}

func BenchmarkTranspose(b *testing.B) {
	rng := rand.New(rand.NewSource(11))
	rows, cols := 1024, 768
	x := randomBuffer(rng, rows*cols)
	k := New()

	for i := 0; i < b.N; i++ {
		_, _ = k.Transpose(x, rows, cols)
	}
}

func BenchmarkArgmax(b *testing.B) {
	rng := rand.New(rand.NewSource(12))
	x := randomBuffer(rng, 1<<16)
	k := New()

	for i := 0; i < b.N; i++ {
		_, _ = k.Argmax(x)
	}
}
