package command

import (
	"strings"
	"testing"

	"github.com/adinKent/pharaoh/internal/models"
)

func TestAliasLookupSingle(t *testing.T) {
	table := NewAliasTable()

	cases := []struct {
		keyword string
		symbol  string
		market  models.MarketClass
	}{
		{"大盤", "^TWII", models.Index},
		{"櫃買", "^TWOII", models.Index},
		{"美元", "TWD=X", models.Future},
		{"美金", "TWD=X", models.Future},
		{"日幣", "JPYTWD=X", models.Future},
		{"黃金", "GC=F", models.Future},
		{"比特幣", "BTC-USD", models.Future},
	}
	for _, tc := range cases {
		res := table.Lookup(tc.keyword)
		if res.Kind != ResolvedSingle {
			t.Fatalf("Lookup(%s): kind = %v, want single", tc.keyword, res.Kind)
		}
		got := res.Refs[0]
		if got.Symbol != tc.symbol || got.Market != tc.market {
			t.Errorf("Lookup(%s) = %v, want (%s, %s)", tc.keyword, got, tc.symbol, tc.market)
		}
	}
}

func TestAliasLookupBasketOrder(t *testing.T) {
	table := NewAliasTable()

	res := table.Lookup("美股")
	if res.Kind != ResolvedMany {
		t.Fatalf("Lookup(美股): kind = %v, want many", res.Kind)
	}
	want := []string{"^GSPC", "^DJI", "^IXIC", "^SOX"}
	if len(res.Refs) != len(want) {
		t.Fatalf("Lookup(美股): %d members, want %d", len(res.Refs), len(want))
	}
	for i, symbol := range want {
		if res.Refs[i].Symbol != symbol {
			t.Errorf("member %d = %s, want %s", i, res.Refs[i].Symbol, symbol)
		}
	}
}

func TestAliasLookupBondSynonyms(t *testing.T) {
	table := NewAliasTable()

	a := table.Lookup("債券")
	b := table.Lookup("美債")
	if a.Kind != ResolvedMany || b.Kind != ResolvedMany {
		t.Fatal("bond aliases should both resolve to baskets")
	}
	if len(a.Refs) != len(b.Refs) {
		t.Fatalf("債券 and 美債 differ: %d vs %d members", len(a.Refs), len(b.Refs))
	}
	for i := range a.Refs {
		if a.Refs[i] != b.Refs[i] {
			t.Errorf("member %d differs: %v vs %v", i, a.Refs[i], b.Refs[i])
		}
	}
}

func TestAliasLookupHelp(t *testing.T) {
	table := NewAliasTable()

	res := table.Lookup(HelpKeyword)
	if res.Kind != ResolvedLiteral {
		t.Fatalf("Lookup(%s): kind = %v, want literal", HelpKeyword, res.Kind)
	}
	for _, fragment := range []string{"指數:", "#大盤", "#美股期", "原物料:", "#比特幣", "A2330", "F大盤"} {
		if !strings.Contains(res.Literal, fragment) {
			t.Errorf("help text missing %q", fragment)
		}
	}
}

func TestAliasLookupUnknown(t *testing.T) {
	table := NewAliasTable()
	if res := table.Lookup("不存在"); res.Kind != ResolvedNone {
		t.Errorf("unknown keyword resolved to %v", res)
	}
}

func TestHelpTextDeterministic(t *testing.T) {
	table := NewAliasTable()
	if table.HelpText() != table.HelpText() {
		t.Error("HelpText is not stable across calls")
	}
}

// Every alias member must have a display-name override so formatting never
// falls back to a raw ticker for a known alias.
func TestEveryAliasSymbolHasDisplayName(t *testing.T) {
	table := NewAliasTable()
	for _, symbol := range table.Symbols() {
		if _, ok := DisplayName(symbol); !ok {
			t.Errorf("alias symbol %s has no display name", symbol)
		}
	}
}
