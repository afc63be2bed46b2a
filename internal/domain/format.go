package domain

// FormatDefault is the sentinel directive value that defers the output
// format of each file to its resolved content type.
const FormatDefault = "default"

// FormatPreference is the configured output format directive, either a
// literal extension token or the FormatDefault sentinel. The directive
// loader lower-cases the value.
type FormatPreference string

// IsDefault reports whether the preference is the deferral sentinel.
func (f FormatPreference) IsDefault() bool {
	return string(f) == FormatDefault
}

// String returns the raw preference token.
func (f FormatPreference) String() string {
	return string(f)
}
