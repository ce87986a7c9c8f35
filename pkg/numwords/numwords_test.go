package numwords

import "testing"

func TestNormalizeRussian(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"два плюс три", "2 плюс 3"},
		{"двадцать три умножить на два", "23 умножить на 2"},
		{"сто двадцать три тысячи пять", "123005"},
		{"две тысячи двадцать четыре", "2024"},
		{"тысяча двести", "1200"},
		{"один два три", "1 2 3"},
		{"двенадцать три", "12 3"},
		{"сто сто", "100 100"},
		{"ноль ноль", "0 0"},
		{"пять ноль", "5 0"},
		{"миллион", "1000000"},
		{"три миллиона двести тысяч", "3200000"},
		{"Двадцать Пять", "25"},
		{"сорок пять поделить на пять", "45 поделить на 5"},
		{"левая скобка два плюс три правая скобка", "левая скобка 2 плюс 3 правая скобка"},
		{"12 плюс семь", "12 плюс 7"},
		{"привет мир", "привет мир"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input, Russian)
		if got != tt.want {
			t.Errorf("Normalize(%q, ru) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEnglish(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"two plus three", "2 plus 3"},
		{"twenty-three times two", "23 times 2"},
		{"twenty three", "23"},
		{"three hundred and five", "305"},
		{"twelve hundred", "1200"},
		{"nineteen hundred and five", "1905"},
		{"fifteen hundred thousand", "1500000"},
		{"twenty hundred", "20 100"},
		{"one hundred twelve hundred", "112 100"},
		{"two thousand five hundred", "2500"},
		{"one thousand twelve hundred", "1012 100"},
		{"one hundred thousand", "100000"},
		{"one and two", "1 and 2"},
		{"seven integer-divide by two", "7 integer-divide by 2"},
		{"one-two", "one-two"},
		{"forty-two-ish", "forty-two-ish"},
		{"Twelve", "12"},
		{"zero", "0"},
		{"two, three", "2, 3"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input, English)
		if got != tt.want {
			t.Errorf("Normalize(%q, en) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePreservesSurroundingText(t *testing.T) {
	in := "  (пять)  минус\tдва!  "
	want := "  (5)  минус\t2!  "
	if got := Normalize(in, Russian); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"два плюс три",
		"123 + 456",
		"сто двадцать три тысячи пять",
		"12 // 5 ^ 2",
	}
	for _, in := range inputs {
		once := Normalize(in, Russian)
		twice := Normalize(once, Russian)
		if once != twice {
			t.Errorf("Normalize not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeIgnoresCase(t *testing.T) {
	if got := Normalize("ТРИ", Russian); got != "3" {
		t.Errorf("Normalize(ТРИ) = %q, want 3", got)
	}
}

func TestNormalizeUnknownLocale(t *testing.T) {
	in := "два plus three"
	if got := Normalize(in, Locale("xx")); got != in {
		t.Errorf("Normalize with unknown locale = %q, want unchanged", got)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{"ru", Russian, false},
		{"EN", English, false},
		{" en ", English, false},
		{"fr", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLocale(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLocale(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
