package utils

import "testing"

func TestParseMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		exp  int32
		want int64
		ok   bool
	}{
		{"12.34", 2, 1234, true},
		{"0.01", 2, 1, true},
		{"1000", 2, 100000, true},
		{"12.345", 2, 0, false}, // 超精度不静默舍入
		{"abc", 2, 0, false},
		{"12.3456", 4, 123456, true},
	}
	for _, c := range cases {
		got, err := ParseMinorUnits(c.in, c.exp)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseMinorUnits(%q,%d) = %d,%v want %d", c.in, c.exp, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseMinorUnits(%q,%d) expected error", c.in, c.exp)
		}
	}
}

func TestFormatMinorUnits(t *testing.T) {
	if s := FormatMinorUnits(1234, 2); s != "12.34" {
		t.Errorf("FormatMinorUnits = %q, want 12.34", s)
	}
	if s := FormatMinorUnits(5, 2); s != "0.05" {
		t.Errorf("FormatMinorUnits = %q, want 0.05", s)
	}
}
