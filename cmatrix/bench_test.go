package cmatrix_test

import (
	"testing"

	"github.com/katalvlaran/lvlopf/cmatrix"
)

func BenchmarkSparse_Set(b *testing.B) {
	z, _ := cmatrix.NewSparse(1024)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = z.Set(i%1023, 1023, complex(0.001, 0.0005))
	}
}

func BenchmarkSparse_Edges(b *testing.B) {
	z, _ := cmatrix.NewSparse(1024)
	for i := 1; i < 1024; i++ {
		_ = z.Set(i-1, i, complex(0.001, 0.0005))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = z.Edges()
	}
}
