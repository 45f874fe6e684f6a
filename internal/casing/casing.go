// Package casing converts identifiers between the common casing styles used
// for flag names, environment variables and injected parameter names.
package casing

import (
	"regexp"
	"strings"
)

// Style identifies a target casing style.
type Style string

const (
	Snake          Style = "snake"
	ScreamingSnake Style = "screaming-snake"
	Camel          Style = "camel"
	Pascal         Style = "pascal"
	Kebab          Style = "kebab"
	Train          Style = "train"
	Flat           Style = "flat"
	Dot            Style = "dot"
	Title          Style = "title"
	Path           Style = "path"
)

var (
	nonAlphanumeric  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	lowerToUpper     = regexp.MustCompile(`([a-z])([A-Z])`)
	upperToUpperLow  = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	letterToNumber   = regexp.MustCompile(`([a-zA-Z])([0-9])`)
	numberToLetter   = regexp.MustCompile(`([0-9])([a-zA-Z])`)
	collapseNonAlnum = regexp.MustCompile(` +`)
)

// normalize splits value on case and alphanumeric boundaries, joining the
// resulting words with sep.
func normalize(value, sep string) string {
	v := lowerToUpper.ReplaceAllString(value, "$1 $2")
	v = upperToUpperLow.ReplaceAllString(v, "$1 $2")
	v = letterToNumber.ReplaceAllString(v, "$1 $2")
	v = numberToLetter.ReplaceAllString(v, "$1 $2")
	v = nonAlphanumeric.ReplaceAllString(v, " ")
	v = collapseNonAlnum.ReplaceAllString(v, " ")
	v = strings.TrimSpace(v)
	return strings.ReplaceAll(v, " ", sep)
}

func words(value string) []string {
	n := normalize(value, " ")
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// ToSnake converts value to snake_case.
func ToSnake(value string) string {
	return strings.ToLower(normalize(value, "_"))
}

// ToScreamingSnake converts value to SCREAMING_SNAKE_CASE.
func ToScreamingSnake(value string) string {
	return strings.ToUpper(normalize(value, "_"))
}

// ToCamel converts value to camelCase.
func ToCamel(value string) string {
	p := ToPascal(value)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// ToPascal converts value to PascalCase.
func ToPascal(value string) string {
	var sb strings.Builder
	for _, w := range words(value) {
		sb.WriteString(capitalize(w))
	}
	return sb.String()
}

// ToKebab converts value to kebab-case.
func ToKebab(value string) string {
	return strings.ToLower(normalize(value, "-"))
}

// ToTrain converts value to Train-Case.
func ToTrain(value string) string {
	ws := words(value)
	for i, w := range ws {
		ws[i] = capitalize(w)
	}
	return strings.Join(ws, "-")
}

// ToFlat converts value to flatcase.
func ToFlat(value string) string {
	return strings.ToLower(normalize(value, ""))
}

// ToDot converts value to dot.case.
func ToDot(value string) string {
	return strings.ToLower(normalize(value, "."))
}

// ToTitle converts value to Title Case.
func ToTitle(value string) string {
	ws := words(value)
	for i, w := range ws {
		ws[i] = capitalize(w)
	}
	return strings.Join(ws, " ")
}

// ToPath converts value to path/case.
func ToPath(value string) string {
	return strings.ToLower(normalize(value, "/"))
}

// Convert applies the named style to value. Unknown styles return the value
// unchanged along with false.
func Convert(value string, style Style) (string, bool) {
	switch style {
	case Snake:
		return ToSnake(value), true
	case ScreamingSnake:
		return ToScreamingSnake(value), true
	case Camel:
		return ToCamel(value), true
	case Pascal:
		return ToPascal(value), true
	case Kebab:
		return ToKebab(value), true
	case Train:
		return ToTrain(value), true
	case Flat:
		return ToFlat(value), true
	case Dot:
		return ToDot(value), true
	case Title:
		return ToTitle(value), true
	case Path:
		return ToPath(value), true
	}
	return value, false
}
