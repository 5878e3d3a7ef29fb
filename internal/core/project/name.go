package project

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxPackageNameLength is the longest accepted package name, scope included.
const MaxPackageNameLength = 214

// packageNamePattern matches an optionally scoped package identifier made of
// lowercase alphanumeric words joined by single '.', '_' or '-' separators.
var packageNamePattern = regexp.MustCompile(
	`^(?:@[a-z0-9]+(?:[._-][a-z0-9]+)*/)?[a-z0-9]+(?:[._-][a-z0-9]+)*$`,
)

// IsValidPackageName reports whether name is a valid package identifier.
func IsValidPackageName(name string) bool {
	if name == "" || len(name) > MaxPackageNameLength {
		return false
	}
	return packageNamePattern.MatchString(name)
}

// ValidatePackageName returns a *ValidationError when name is not valid.
func ValidatePackageName(name string) error {
	if IsValidPackageName(name) {
		return nil
	}
	return &ValidationError{Field: "package name", Value: name, Err: ErrInvalidPackageName}
}

// ToValidPackageName coerces name into a package identifier on a best-effort
// basis. It is idempotent. Input without any usable character yields "",
// which IsValidPackageName rejects.
func ToValidPackageName(name string) string {
	name = strings.ToLower(foldDiacritics(strings.TrimSpace(name)))

	if rest, ok := strings.CutPrefix(name, "@"); ok {
		if scope, pkg, found := strings.Cut(rest, "/"); found {
			scope = coerceSegment(scope, MaxPackageNameLength)
			pkg = coerceSegment(pkg, MaxPackageNameLength)
			switch {
			case pkg == "":
				return scope
			case scope == "":
				return pkg
			}
			// "@" + scope + "/" + pkg
			budget := MaxPackageNameLength - len(scope) - 2
			if budget <= 0 {
				return pkg
			}
			pkg = coerceSegment(pkg, budget)
			if pkg == "" {
				return scope
			}
			return "@" + scope + "/" + pkg
		}
	}
	return coerceSegment(name, MaxPackageNameLength)
}

// coerceSegment keeps runs of [a-z0-9], turns each run of other characters
// into one separator and trims separators from both ends. A run consisting of
// exactly "." or "_" is kept as is; any other run becomes "-".
func coerceSegment(s string, limit int) string {
	var b strings.Builder
	var sep strings.Builder

	flush := func() {
		if sep.Len() == 0 {
			return
		}
		if b.Len() > 0 {
			switch run := sep.String(); run {
			case ".", "_":
				b.WriteString(run)
			default:
				b.WriteByte('-')
			}
		}
		sep.Reset()
	}

	for _, r := range s {
		if isNameRune(r) {
			flush()
			b.WriteRune(r)
			continue
		}
		sep.WriteRune(r)
	}

	out := b.String()
	if len(out) > limit {
		out = out[:limit]
	}
	return strings.TrimRight(out, "._-")
}

func isNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// foldDiacritics decomposes s and drops combining marks, so "Café" becomes "Cafe".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
