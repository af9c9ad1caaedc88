package command

import (
	"context"
	"strings"
	"unicode"

	"github.com/adinKent/pharaoh/internal/models"
)

// ResolutionKind tags what an operand resolved to.
type ResolutionKind int

const (
	// ResolvedNone means the operand is not something the bot understands.
	ResolvedNone ResolutionKind = iota
	// ResolvedSingle carries exactly one symbol reference.
	ResolvedSingle
	// ResolvedMany carries an ordered basket of symbol references.
	ResolvedMany
	// ResolvedLiteral carries a pre-rendered reply (the help text).
	ResolvedLiteral
)

// Resolution is the result of classifying an operand: a single symbol, an
// ordered basket, a literal reply, or nothing. Downstream dispatch is one
// switch on Kind instead of shape-sniffing.
type Resolution struct {
	Kind    ResolutionKind
	Refs    []models.SymbolRef
	Literal string
}

func none() Resolution { return Resolution{Kind: ResolvedNone} }

func single(r models.SymbolRef) Resolution {
	return Resolution{Kind: ResolvedSingle, Refs: []models.SymbolRef{r}}
}

func many(rs []models.SymbolRef) Resolution {
	return Resolution{Kind: ResolvedMany, Refs: rs}
}

func literal(text string) Resolution {
	return Resolution{Kind: ResolvedLiteral, Literal: text}
}

// Classifier resolves a cleaned operand to symbol references, consulting the
// alias table and falling back to the company-name resolver for CJK input.
type Classifier struct {
	Aliases *AliasTable
	Names   NameResolver
}

// Classify decides what an operand is. Decision order:
//  1. leading ASCII digit → domestic equity (covers ETF codes like 00930A)
//  2. contains a CJK rune → alias table, then company-name lookup
//  3. leading ASCII letter → foreign equity, whole operand uppercased
//
// Operands are classified purely by the leading run; the remainder is not
// validated beyond whitespace stripping, so dotted share classes like BRK.B
// pass through intact.
func (c *Classifier) Classify(ctx context.Context, operand string) Resolution {
	operand = stripWhitespace(operand)
	if operand == "" {
		return none()
	}

	first := rune(operand[0])
	if first >= '0' && first <= '9' {
		return single(models.SymbolRef{Symbol: operand, Market: models.DomesticEquity})
	}

	if containsCJK(operand) {
		if res := c.Aliases.Lookup(operand); res.Kind != ResolvedNone {
			return res
		}
		if c.Names != nil {
			symbol, err := c.Names.SymbolFromCompanyName(ctx, operand)
			if err == nil && symbol != "" {
				return single(models.SymbolRef{Symbol: symbol, Market: models.DomesticEquity})
			}
		}
		return none()
	}

	if isASCIIAlnum(first) {
		return single(models.SymbolRef{Symbol: strings.ToUpper(operand), Market: models.ForeignEquity})
	}

	return none()
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func isASCIIAlnum(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	}
	return false
}
