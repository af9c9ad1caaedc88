package command

import (
	"context"
	"errors"
	"testing"

	"github.com/adinKent/pharaoh/internal/models"
)

// fakeResolver resolves company names from a fixed map.
type fakeResolver struct {
	names map[string]string
	calls int
}

func (f *fakeResolver) SymbolFromCompanyName(_ context.Context, name string) (string, error) {
	f.calls++
	if symbol, ok := f.names[name]; ok {
		return symbol, nil
	}
	return "", errors.New("not found")
}

func newTestClassifier(names map[string]string) (*Classifier, *fakeResolver) {
	resolver := &fakeResolver{names: names}
	return &Classifier{Aliases: NewAliasTable(), Names: resolver}, resolver
}

func TestClassifyDigitLeading(t *testing.T) {
	c, _ := newTestClassifier(nil)

	cases := []string{"2330", "2884", "0", "123456", "00930A", "0050 "}
	for _, operand := range cases {
		res := c.Classify(context.Background(), operand)
		if res.Kind != ResolvedSingle {
			t.Fatalf("Classify(%q): kind = %v, want single", operand, res.Kind)
		}
		if res.Refs[0].Market != models.DomesticEquity {
			t.Errorf("Classify(%q): market = %s, want TW", operand, res.Refs[0].Market)
		}
	}
}

func TestClassifyAlphabetic(t *testing.T) {
	c, _ := newTestClassifier(nil)

	cases := []struct{ in, want string }{
		{"AAPL", "AAPL"},
		{"aapl", "AAPL"},
		{"A", "A"},
		{"ABC123", "ABC123"},
		{"AAPL extra text", "AAPLEXTRATEXT"}, // internal whitespace stripped
		{"BRK.B", "BRK.B"},                   // dotted share class survives
		{"bf.b", "BF.B"},
	}
	for _, tc := range cases {
		res := c.Classify(context.Background(), tc.in)
		if res.Kind != ResolvedSingle {
			t.Fatalf("Classify(%q): kind = %v, want single", tc.in, res.Kind)
		}
		got := res.Refs[0]
		if got.Symbol != tc.want || got.Market != models.ForeignEquity {
			t.Errorf("Classify(%q) = %v, want (%s, US)", tc.in, got, tc.want)
		}
	}
}

func TestClassifyAliasBeforeNameLookup(t *testing.T) {
	c, resolver := newTestClassifier(map[string]string{"大盤": "9999"})

	res := c.Classify(context.Background(), "大盤")
	if res.Kind != ResolvedSingle || res.Refs[0].Symbol != "^TWII" {
		t.Fatalf("Classify(大盤) = %v, want ^TWII via alias table", res)
	}
	if resolver.calls != 0 {
		t.Errorf("alias hit still consulted the name resolver %d times", resolver.calls)
	}
}

func TestClassifyCompanyNameFallback(t *testing.T) {
	c, resolver := newTestClassifier(map[string]string{"台積電": "2330"})

	res := c.Classify(context.Background(), "台積電")
	if res.Kind != ResolvedSingle {
		t.Fatalf("Classify(台積電): kind = %v, want single", res.Kind)
	}
	got := res.Refs[0]
	if got.Symbol != "2330" || got.Market != models.DomesticEquity {
		t.Errorf("Classify(台積電) = %v, want (2330, TW)", got)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver called %d times, want 1", resolver.calls)
	}
}

func TestClassifyUnresolvableName(t *testing.T) {
	c, _ := newTestClassifier(nil)
	if res := c.Classify(context.Background(), "不存在的公司"); res.Kind != ResolvedNone {
		t.Errorf("unresolvable CJK operand resolved to %v", res)
	}
}

func TestClassifyRejects(t *testing.T) {
	c, _ := newTestClassifier(nil)
	for _, operand := range []string{"", "   ", "\t\n", "$$", "!#"} {
		if res := c.Classify(context.Background(), operand); res.Kind != ResolvedNone {
			t.Errorf("Classify(%q) = %v, want none", operand, res)
		}
	}
}

// Mixed digit/CJK operands are classified by first character only.
func TestClassifyMixedDigitCJK(t *testing.T) {
	c, _ := newTestClassifier(nil)
	res := c.Classify(context.Background(), "2330台積電")
	if res.Kind != ResolvedSingle || res.Refs[0].Market != models.DomesticEquity {
		t.Fatalf("Classify(2330台積電) = %v, want domestic equity", res)
	}
	if res.Refs[0].Symbol != "2330台積電" {
		t.Errorf("remainder was mangled: %s", res.Refs[0].Symbol)
	}
}
