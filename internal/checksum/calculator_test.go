package checksum

import (
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty string",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "Known vector",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateRaw([]byte(tt.content))
			if result != tt.expected {
				t.Errorf("CalculateRaw() = %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_RawDetectsEveryChange(t *testing.T) {
	calc := New()

	a := calc.CalculateRaw([]byte("name,price\nLamp,10\n"))
	b := calc.CalculateRaw([]byte("name,price\r\nLamp,10\r\n"))
	if a == b {
		t.Error("raw checksums of different line endings should differ")
	}
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()
	base := "name,price\nLamp,10\n"

	tests := []struct {
		name        string
		content     string
		shouldMatch bool
	}{
		{name: "Identical content", content: base, shouldMatch: true},
		{name: "CRLF line endings", content: "name,price\r\nLamp,10\r\n", shouldMatch: true},
		{name: "Old Mac line endings", content: "name,price\rLamp,10\r", shouldMatch: true},
		{name: "Byte order mark", content: "\ufeffname,price\nLamp,10\n", shouldMatch: true},
		{name: "Missing final newline", content: "name,price\nLamp,10", shouldMatch: true},
		{name: "Trailing blanks and empty lines", content: "name,price  \n\n\nLamp,10\t\n\n", shouldMatch: true},
		{name: "Different case", content: "name,price\nLAMP,10\n", shouldMatch: false},
		{name: "Different value", content: "name,price\nLamp,11\n", shouldMatch: false},
		{name: "Leading blanks are data", content: "name,price\n Lamp,10\n", shouldMatch: false},
	}

	want := calc.CalculateNormalized([]byte(base))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateNormalized([]byte(tt.content))
			if (got == want) != tt.shouldMatch {
				t.Errorf("CalculateNormalized(%q) match = %v, want %v", tt.content, got == want, tt.shouldMatch)
			}
		})
	}
}

func TestSHA256Calculator_Normalize(t *testing.T) {
	calc := New()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "Empty", content: "", want: ""},
		{name: "Only blank lines", content: "\r\n \n\t\n", want: ""},
		{name: "Mixed endings", content: "a\r\nb\rc\n", want: "a\nb\nc\n"},
		{name: "BOM only at start", content: "\ufeffa,\ufeffb", want: "a,\ufeffb\n"},
		{name: "CR before LF at end", content: "a\r", want: "a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(calc.normalize([]byte(tt.content))); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestSHA256Calculator_ImplementsCalculator(t *testing.T) {
	var _ Calculator = New()
}
