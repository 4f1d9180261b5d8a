package extract

import "testing"

func TestIntFromText(t *testing.T) {
	tests := []struct {
		text string
		want *int
	}{
		{"120 sold", intPtr(120)},
		{"Ratings 1,204", intPtr(1204)},
		{"(8)", intPtr(8)},
		{"No Ratings", nil},
		{"", nil},
		{"sold out", nil},
	}

	for _, tt := range tests {
		got := IntFromText(tt.text)
		if !intEq(got, tt.want) {
			t.Errorf("IntFromText(%q) = %v; want %v", tt.text, fmtInt(got), fmtInt(tt.want))
		}
	}
}

func TestDecimalFromText(t *testing.T) {
	tests := []struct {
		text string
		want *float64
	}{
		{"Tk 1,234.50", floatPtr(1234.50)},
		{"৳ 120", floatPtr(120)},
		{"$99.99", floatPtr(99.99)},
		{"", nil},
		{"N/A", nil},
		{"..", nil},
	}

	for _, tt := range tests {
		got := DecimalFromText(tt.text)
		if !floatEq(got, tt.want) {
			t.Errorf("DecimalFromText(%q) = %v; want %v", tt.text, fmtFloat(got), fmtFloat(tt.want))
		}
	}
}

func TestBackgroundImageURL(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{`background-image: url("https://img.example.com/a.jpg");`, "https://img.example.com/a.jpg"},
		{`background-image: url('//img.example.com/b.jpg')`, "//img.example.com/b.jpg"},
		{`background-image: url(https://img.example.com/c.jpg)`, "https://img.example.com/c.jpg"},
		{`color: red`, ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := BackgroundImageURL(tt.style); got != tt.want {
			t.Errorf("BackgroundImageURL(%q) = %q; want %q", tt.style, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	const base = "https://www.daraz.com.bd/"

	tests := []struct {
		href string
		want string
	}{
		{"//www.daraz.com.bd/products/x-123.html", "https://www.daraz.com.bd/products/x-123.html"},
		{"/products/x-123.html", "https://www.daraz.com.bd/products/x-123.html"},
		{"https://other.example.com/p", "https://other.example.com/p"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(base, tt.href); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q; want %q", tt.href, got, tt.want)
		}
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	const base = "https://www.daraz.com.bd/"
	once := NormalizeURL(base, "//www.daraz.com.bd/products/x.html")
	twice := NormalizeURL(base, once)
	if once != twice {
		t.Errorf("normalization not idempotent: %q != %q", once, twice)
	}
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func intEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func fmtFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
