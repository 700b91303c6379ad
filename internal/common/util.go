package common

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// LanguageOrDefault returns code, or DefaultLanguage when code is empty.
func LanguageOrDefault(code string) string {
	if code == "" {
		return DefaultLanguage
	}
	return code
}
