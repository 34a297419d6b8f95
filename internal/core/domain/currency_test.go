package domain

import "testing"

func TestCurrencySymbol(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"TRY", "₺"},
		{"try", "₺"},
		{"USD", "$"},
		{"", "$"},
		{"EUR", "$"},
	}
	for _, tc := range cases {
		if got := CurrencySymbol(tc.code); got != tc.want {
			t.Fatalf("CurrencySymbol(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
