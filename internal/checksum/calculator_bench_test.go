package checksum

import (
	"strings"
	"testing"
)

// BenchmarkCalculateRaw benchmarks raw checksum calculation
func BenchmarkCalculateRaw(b *testing.B) {
	calculator := New()
	content := []byte(strings.Repeat("1,Desk Lamp,19.99,0.10,3\n", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculator.CalculateRaw(content)
	}
}

// BenchmarkCalculateNormalized benchmarks normalized checksum calculation
func BenchmarkCalculateNormalized(b *testing.B) {
	calculator := New()
	content := []byte(strings.Repeat("1,Desk Lamp,19.99,0.10,3  \r\n", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculator.CalculateNormalized(content)
	}
}
