package codegen

import (
	"fmt"
	"strings"
	"unicode"
)

// SnakeCase converts a camel-case name to snake case. An underscore is
// inserted between a lower-case and an upper-case letter; other
// non-alphanumeric characters become underscores.
func SnakeCase(name string) (string, error) {
	var sb strings.Builder
	var last rune
	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return "", fmt.Errorf("illegal character %q in name %q", r, name)
			}
			sb.WriteRune(unicode.ToLower(r))
			last = r
			continue
		}
		if unicode.IsLower(last) && unicode.IsUpper(r) {
			sb.WriteByte('_')
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteByte('_')
		}
		last = r
	}
	return sb.String(), nil
}

// HeaderGuard builds an include guard from name parts, e.g.
// HeaderGuard("_IMPL_HPP", "main", "ev_slac") is MAIN_EV_SLAC_IMPL_HPP.
func HeaderGuard(suffix string, parts ...string) (string, error) {
	snake, err := SnakeCase(strings.Join(parts, "_"))
	if err != nil {
		return "", err
	}
	return strings.ToUpper(snake) + suffix, nil
}

// EnumConstant turns an enum value into a C++ identifier.
func EnumConstant(value string) string {
	var sb strings.Builder
	for i, r := range value {
		switch {
		case unicode.IsLetter(r) || r == '_':
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// SPDXIdentifier extracts a license identifier from a license URL such as
// https://opensource.org/licenses/Apache-2.0. Other values are returned as is.
func SPDXIdentifier(license string) string {
	license = strings.TrimSpace(strings.TrimSuffix(license, "/"))
	if strings.Contains(license, "://") {
		if i := strings.LastIndex(license, "/"); i >= 0 {
			return license[i+1:]
		}
	}
	return license
}
