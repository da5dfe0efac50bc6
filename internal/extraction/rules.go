package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/R4mii/ORC-SYS-sub001/constants"
)

// Rule is one named extraction attempt for a field. The rules of a field form
// an ordered cascade: the first rule that matches wins and later rules are
// never consulted, even if they would also match. Specific labelled patterns
// go before generic ones.
type Rule struct {
	Name  string
	re    *regexp.Regexp
	group int // submatch index, 0 means 1
}

func rule(name, pattern string) Rule {
	return Rule{Name: name, re: regexp.MustCompile(pattern)}
}

// tryRules returns the first matching rule's trimmed capture together with
// the rule name, or ("", "") when the whole cascade misses. A miss is never
// an error; the field simply stays at its zero value.
func tryRules(text string, rules []Rule) (string, string) {
	for _, r := range rules {
		g := r.group
		if g == 0 {
			g = 1
		}
		if m := r.re.FindStringSubmatch(text); len(m) > g {
			if v := strings.TrimSpace(m[g]); v != "" {
				return v, r.Name
			}
		}
	}
	return "", ""
}

const (
	numericDate  = `\d{1,2}[./-]\d{1,2}[./-]\d{2,4}`
	frenchMonth  = `(?:janv(?:ier)?|f[ée]vr(?:ier)?|mars|avr(?:il)?|mai|juin|juil(?:let)?|ao[ûu]t|sept(?:embre)?|oct(?:obre)?|nov(?:embre)?|d[ée]c(?:embre)?)`
	spelledDate  = `\d{1,2}(?:er)?\s+` + frenchMonth + `\.?\s+\d{4}`
	dateLabel    = `(?i)\bdate\s*(?:de\s+)?(?:facture|facturation)?\s*:?\s*`
	dueDateLabel = `(?i)\b(?:date\s+d['’]\s*)?(?:[ée]ch[ée]ance|due\s+date|payable\s+(?:avant\s+le|le|avant|au))\s*:?\s*`
)

var invoiceNumberRules = []Rule{
	rule("facture-numeric", `(?i)\b(?:facture|invoice)\s*(?:n[°º]|no\.?|#)?\s*[:#]?\s*(\d{2,})`),
	rule("facture-alnum", `(?i)\b(?:facture|invoice|num.{1,2}ro)\s*(?:n[°º]|no\.?|#)?\s*[:#]?\s*([A-Za-z0-9/-]*\d[A-Za-z0-9/-]*)`),
	rule("no-facture", `(?i)\bn[°º]?o?\.?\s*(?:de\s+)?facture\s*[:#]?\s*([A-Za-z0-9/-]*\d[A-Za-z0-9/-]*)`),
}

var dateRules = []Rule{
	rule("date-label-numeric", dateLabel+`(`+numericDate+`)`),
	rule("date-label-month", dateLabel+`(`+spelledDate+`)`),
	// last resort: any bare numeric date anywhere in the text
	rule("date-bare", `\b(`+numericDate+`)\b`),
}

// No bare-date fallback here: a lone date in the text is far more likely the
// invoice date than the due date.
var dueDateRules = []Rule{
	rule("due-label-numeric", dueDateLabel+`(`+numericDate+`)`),
	rule("due-label-month", dueDateLabel+`(`+spelledDate+`)`),
}

var supplierNameRules = []Rule{
	rule("supplier-label", `(?im)^\s*(?:fournisseur|supplier|company|soci[ée]t[ée])\s*:\s*(.+)$`),
}

var taxIDRules = []Rule{
	rule("ice-label", `(?i)\bICE\s*:?\s*(\d{15})\b`),
	rule("fiscal-label", `(?i)\b(?:tax\s*id|num.{1,2}ro\s+fiscal|identifiant\s+fiscal|IF)\s*:?\s*(\d{5,15})\b`),
}

// Legal-entity markers accepted by the heading heuristic. Matched
// case-sensitively; lowercased "sa" inside a word is not a company form.
var reLegalEntity = regexp.MustCompile(`\b(?:SARL|SASU|SAS|SA|EURL|SNC)\b`)

// headingScanLines bounds the supplier-name fallback scan.
const headingScanLines = 5

// extractSupplierName tries the labelled rules first, then falls back to a
// heading heuristic: the first of the top lines that is either all-uppercase
// or carries a legal-entity marker.
func extractSupplierName(text string) (string, string) {
	if v, name := tryRules(text, supplierNameRules); v != "" {
		return v, name
	}
	lines := strings.Split(text, "\n")
	if len(lines) > headingScanLines {
		lines = lines[:headingScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isUppercaseHeading(line) || reLegalEntity.MatchString(line) {
			return line, "heading-heuristic"
		}
	}
	return "", ""
}

func isUppercaseHeading(line string) bool {
	if len([]rune(line)) < 5 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

var (
	reAddressLabel = regexp.MustCompile(`(?i)^\s*(?:adresse|address)\s*:\s*(.*)$`)
	reLabelLine    = regexp.MustCompile(`(?i)^\s*[a-zà-ÿ][a-zà-ÿ'. -]{0,24}:`)
)

// addressContinuationLines bounds how many lines after the label still count
// as part of the address block.
const addressContinuationLines = 3

// extractSupplierAddress captures the labelled line plus the following lines
// of the block, stopping at a blank line, at another "label:" line, or after
// three continuations. Parts are joined with ", ".
func extractSupplierAddress(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := reAddressLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parts := make([]string, 0, addressContinuationLines+1)
		if v := strings.TrimSpace(m[1]); v != "" {
			parts = append(parts, v)
		}
		for j := i + 1; j < len(lines) && j <= i+addressContinuationLines; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || reLabelLine.MatchString(next) {
				break
			}
			parts = append(parts, next)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// reCurrencyToken recognizes the fixed symbol/code table; longer codes come
// before their prefixes so "DHs" does not resolve as "DH" + stray "s".
var reCurrencyToken = regexp.MustCompile(`(?i)[€$£]|\b(?:MAD|DHS|DH|EUR|USD|GBP)\b`)

// detectCurrency maps the first currency token found anywhere in the text to
// its ISO code, or "" when the text carries none.
func detectCurrency(text string) string {
	tok := reCurrencyToken.FindString(text)
	if tok == "" {
		return ""
	}
	return constants.CanonicalCurrency(tok)
}
