// Package signature holds the text matchers probes run against response bodies.
package signature

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoReference is returned when no attribute references an install-internal directory.
	ErrNoReference = errors.New("no install path reference found")
	// ErrEmptyValue is returned when the reference sits directly after an opening quote.
	ErrEmptyValue = errors.New("install path reference has an empty quoted value")
	// ErrParentTraversal is returned when the quoted value climbs with "../".
	ErrParentTraversal = errors.New("install path reference uses parent directory traversal")
	// ErrUnquoted is returned when the captured value has no double quote to anchor on.
	ErrUnquoted = errors.New("install path reference is not double quoted")
	// ErrNoTitle is returned when a document has no <title> element.
	ErrNoTitle = errors.New("document has no title")
)

// Signature is a named pattern expected in a response body.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
}

// New compiles pattern into a Signature.
func New(name, pattern string) (Signature, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Signature{}, fmt.Errorf("compile signature %q: %w", name, err)
	}
	return Signature{Name: name, Pattern: re}, nil
}

// MustNew is New for package-level tables; it panics on a bad pattern.
func MustNew(name, pattern string) Signature {
	s, err := New(name, pattern)
	if err != nil {
		panic(err)
	}
	return s
}

// Literal builds a case-sensitive signature for a fixed string.
func Literal(name, literal string) Signature {
	return Signature{Name: name, Pattern: regexp.MustCompile(regexp.QuoteMeta(literal))}
}

// FoldedLiteral builds a signature for a fixed string matched in any letter casing.
func FoldedLiteral(name, literal string) Signature {
	return Signature{Name: name, Pattern: regexp.MustCompile("(?i)" + regexp.QuoteMeta(literal))}
}

// Match reports whether body contains the signature.
func (s Signature) Match(body string) bool {
	if s.Pattern == nil {
		return false
	}
	return s.Pattern.MatchString(body)
}

// ReferenceMatcher finds an attribute assignment followed, within Window
// characters, by one of Markers. With the defaults it is equivalent to
// (href|src|content)=(.{0,35})(typo3temp/|typo3conf/).
type ReferenceMatcher struct {
	Attributes []string
	Markers    []string
	Window     int

	re *regexp.Regexp
}

// NewReferenceMatcher compiles the matcher. Window must be positive.
func NewReferenceMatcher(attributes, markers []string, window int) (*ReferenceMatcher, error) {
	if window <= 0 {
		return nil, fmt.Errorf("lookahead window must be positive, got %d", window)
	}
	if len(attributes) == 0 || len(markers) == 0 {
		return nil, errors.New("reference matcher needs attributes and markers")
	}
	if window > 1000 {
		// RE2 rejects repeat counts above 1000
		return nil, fmt.Errorf("lookahead window %d exceeds 1000", window)
	}

	pattern := fmt.Sprintf(`(%s)=(.{0,%d})(%s)`, alternation(attributes), window, alternation(markers))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile reference matcher: %w", err)
	}

	return &ReferenceMatcher{
		Attributes: attributes,
		Markers:    markers,
		Window:     window,
		re:         re,
	}, nil
}

func alternation(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return strings.Join(quoted, "|")
}

// Find returns the text between the attribute's '=' and the marker for the
// leftmost match in body.
func (m *ReferenceMatcher) Find(body string) (string, error) {
	groups := m.re.FindStringSubmatch(body)
	if groups == nil {
		return "", ErrNoReference
	}
	return groups[2], nil
}

// ExtractValue turns a captured reference prefix such as `"/cms/` into the
// install path `/cms`: the text after the first double quote up to the next
// one, minus its final character.
func ExtractValue(captured string) (string, error) {
	if captured == `"` {
		return "", ErrEmptyValue
	}
	if strings.Contains(captured, `"../`) {
		return "", ErrParentTraversal
	}

	parts := strings.SplitN(captured, `"`, 3)
	if len(parts) < 2 {
		return "", ErrUnquoted
	}

	value := parts[1]
	if value == "" {
		return "", ErrEmptyValue
	}
	return value[:len(value)-1], nil
}

// Title returns the text of the first <title> element in an HTML document.
func Title(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	selection := doc.Find("title").First()
	if selection.Length() == 0 {
		return "", ErrNoTitle
	}
	return strings.TrimSpace(selection.Text()), nil
}
