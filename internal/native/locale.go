package native

import (
	"strconv"
	"strings"
)

// CharsetFromLocale extracts the codeset from a POSIX locale name such as
// "en_US.UTF-8" or "de_DE.ISO-8859-15@euro".
// "C", "POSIX" and the empty locale map to US-ASCII; a locale without an
// explicit codeset maps to UTF-8.
func CharsetFromLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	switch locale {
	case "", "C", "POSIX":
		return "us-ascii"
	}

	if at := strings.IndexByte(locale, '@'); at >= 0 {
		locale = locale[:at]
	}
	dot := strings.IndexByte(locale, '.')
	if dot < 0 || dot == len(locale)-1 {
		return "utf-8"
	}

	codeset := strings.ToLower(locale[dot+1:])
	switch codeset {
	case "utf8", "utf-8":
		return "utf-8"
	case "ansi_x3.4-1968", "ascii", "us-ascii":
		return "us-ascii"
	case "euckr":
		return "euc-kr"
	case "eucjp":
		return "euc-jp"
	case "sjis":
		return "shift_jis"
	}
	return codeset
}

// localeFromEnv applies the POSIX precedence LC_ALL > LC_CTYPE > LANG.
func localeFromEnv(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// CharsetFromCodePage maps a Windows ANSI code page to a charset name.
func CharsetFromCodePage(cp uint32) string {
	switch cp {
	case 65001:
		return "utf-8"
	case 20127:
		return "us-ascii"
	case 28591:
		return "iso-8859-1"
	case 932:
		return "shift_jis"
	case 936:
		return "gbk"
	case 949:
		return "euc-kr"
	case 950:
		return "big5"
	}
	if cp == 874 || (cp >= 1250 && cp <= 1258) {
		return "windows-" + strconv.FormatUint(uint64(cp), 10)
	}
	return "utf-8"
}
