package native

import "testing"

func TestCharsetFromLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"", "us-ascii"},
		{"C", "us-ascii"},
		{"POSIX", "us-ascii"},
		{"C.UTF-8", "utf-8"},
		{"en_US.UTF-8", "utf-8"},
		{"en_US.utf8", "utf-8"},
		{"en_US", "utf-8"},
		{"de_DE.ISO-8859-15@euro", "iso-8859-15"},
		{"ja_JP.eucJP", "euc-jp"},
		{"ja_JP.SJIS", "shift_jis"},
		{"C.ANSI_X3.4-1968", "us-ascii"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := CharsetFromLocale(tt.locale); got != tt.want {
				t.Errorf("CharsetFromLocale(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestLocaleFromEnvPrecedence(t *testing.T) {
	env := map[string]string{
		"LANG":     "en_US.ISO-8859-1",
		"LC_CTYPE": "de_DE.UTF-8",
	}
	getenv := func(k string) string { return env[k] }

	if got := localeFromEnv(getenv); got != "de_DE.UTF-8" {
		t.Errorf("LC_CTYPE should beat LANG, got %q", got)
	}

	env["LC_ALL"] = "C"
	if got := localeFromEnv(getenv); got != "C" {
		t.Errorf("LC_ALL should win, got %q", got)
	}
}

func TestCharsetFromCodePage(t *testing.T) {
	tests := []struct {
		cp   uint32
		want string
	}{
		{65001, "utf-8"},
		{1252, "windows-1252"},
		{1251, "windows-1251"},
		{874, "windows-874"},
		{932, "shift_jis"},
		{20127, "us-ascii"},
		{12345, "utf-8"},
	}

	for _, tt := range tests {
		if got := CharsetFromCodePage(tt.cp); got != tt.want {
			t.Errorf("CharsetFromCodePage(%d) = %q, want %q", tt.cp, got, tt.want)
		}
	}
}
