package locale

// Locale is one of the language tags the site is published in.
type Locale string

const (
	RU Locale = "ru"
	EN Locale = "en"
	KK Locale = "kk"
)

// Default is the locale served at the bare (unprefixed) URLs.
const Default = RU

// Supported lists every locale the site is published in, default first.
var Supported = []Locale{RU, EN, KK}

func IsSupported(s string) bool {
	for _, l := range Supported {
		if string(l) == s {
			return true
		}
	}
	return false
}

// Resolve maps an arbitrary URL segment to a supported locale. Unknown
// values fall back to Default so a malformed prefix never breaks the page.
func Resolve(s string) Locale {
	if IsSupported(s) {
		return Locale(s)
	}
	return Default
}
