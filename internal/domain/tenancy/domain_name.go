package tenancy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultDomainSuffix sufijo usado cuando la configuración no define uno.
const DefaultDomainSuffix = "example.com"

// DomainFor deriva el dominio de un tenant a partir de su nombre: "Acme" -> "acme.example.com".
// Quita tildes ("Compañía Ñandú" -> "compania-nandu") y reemplaza lo no alfanumérico por guiones.
func DomainFor(name, suffix string) string {
	if suffix == "" {
		suffix = DefaultDomainSuffix
	}
	return Slug(name) + "." + strings.TrimPrefix(suffix, ".")
}

// Slug normaliza un nombre a [a-z0-9-]. Devuelve "tenant" si no queda ningún carácter útil.
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "tenant"
	}
	return slug
}
