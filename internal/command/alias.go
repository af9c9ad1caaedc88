package command

import (
	"fmt"
	"strings"

	"github.com/adinKent/pharaoh/internal/models"
)

// HelpKeyword is the alias whose lookup result is the pre-rendered help text
// instead of a symbol list.
const HelpKeyword = "指令"

type aliasCategory struct {
	label string
	keys  []string // declared order, preserved in help text and baskets
	table map[string][]models.SymbolRef
}

// AliasTable maps command keywords to one or more symbol references. It is
// built once at startup and read-only afterwards.
type AliasTable struct {
	categories []aliasCategory
	entries    map[string][]models.SymbolRef
}

func ref(symbol string, market models.MarketClass) []models.SymbolRef {
	return []models.SymbolRef{{Symbol: symbol, Market: market}}
}

func refs(pairs ...models.SymbolRef) []models.SymbolRef { return pairs }

// NewAliasTable builds the merged keyword table. Categories merge in a fixed
// order: index, index-future, currency, commodity, bond, crypto. Keys are
// unique across categories; a duplicate key would be shadowed by the earlier
// category, so adding one is a reviewed decision.
func NewAliasTable() *AliasTable {
	ind := models.Index
	fut := models.Future

	categories := []aliasCategory{
		{
			label: "指數",
			keys:  []string{"大盤", "櫃買", "日股", "韓股", "亞股", "美股"},
			table: map[string][]models.SymbolRef{
				"大盤": ref("^TWII", ind),
				"櫃買": ref("^TWOII", ind),
				"日股": ref("^N225", ind),
				"韓股": ref("^KS11", ind),
				"亞股": refs(
					models.SymbolRef{Symbol: "^TWII", Market: ind},
					models.SymbolRef{Symbol: "^N225", Market: ind},
					models.SymbolRef{Symbol: "^KS11", Market: ind},
				),
				"美股": refs(
					models.SymbolRef{Symbol: "^GSPC", Market: ind},
					models.SymbolRef{Symbol: "^DJI", Market: ind},
					models.SymbolRef{Symbol: "^IXIC", Market: ind},
					models.SymbolRef{Symbol: "^SOX", Market: ind},
				),
			},
		},
		{
			label: "美股期",
			keys:  []string{"美股期"},
			table: map[string][]models.SymbolRef{
				"美股期": refs(
					models.SymbolRef{Symbol: "ES=F", Market: ind},
					models.SymbolRef{Symbol: "YM=F", Market: ind},
					models.SymbolRef{Symbol: "NQ=F", Market: ind},
					models.SymbolRef{Symbol: "SOX=F", Market: ind},
				),
			},
		},
		{
			label: "外匯",
			keys:  []string{"外匯", "美元", "美金", "日元", "日幣", "澳元", "澳幣"},
			table: map[string][]models.SymbolRef{
				"外匯": refs(
					models.SymbolRef{Symbol: "TWD=X", Market: fut},
					models.SymbolRef{Symbol: "JPYTWD=X", Market: fut},
					models.SymbolRef{Symbol: "AUDTWD=X", Market: fut},
				),
				"美元": ref("TWD=X", fut),
				"美金": ref("TWD=X", fut),
				"日元": ref("JPYTWD=X", fut),
				"日幣": ref("JPYTWD=X", fut),
				"澳元": ref("AUDTWD=X", fut),
				"澳幣": ref("AUDTWD=X", fut),
			},
		},
		{
			label: "原物料",
			keys:  []string{"黃金", "白銀", "貴金屬", "原油"},
			table: map[string][]models.SymbolRef{
				"黃金": ref("GC=F", fut),
				"白銀": ref("SI=F", fut),
				"貴金屬": refs(
					models.SymbolRef{Symbol: "GC=F", Market: fut},
					models.SymbolRef{Symbol: "SI=F", Market: fut},
				),
				"原油": ref("CL=F", fut),
			},
		},
		{
			label: "債券",
			keys:  []string{"債券", "美債"},
			table: map[string][]models.SymbolRef{
				"債券": refs(
					models.SymbolRef{Symbol: "^FVX", Market: fut},
					models.SymbolRef{Symbol: "^TNX", Market: fut},
					models.SymbolRef{Symbol: "^TYX", Market: fut},
				),
				"美債": refs(
					models.SymbolRef{Symbol: "^FVX", Market: fut},
					models.SymbolRef{Symbol: "^TNX", Market: fut},
					models.SymbolRef{Symbol: "^TYX", Market: fut},
				),
			},
		},
		{
			label: "虛擬幣",
			keys:  []string{"比特幣", "以太幣", "虛擬幣"},
			table: map[string][]models.SymbolRef{
				"比特幣": ref("BTC-USD", fut),
				"以太幣": ref("ETH-USD", fut),
				"虛擬幣": refs(
					models.SymbolRef{Symbol: "BTC-USD", Market: fut},
					models.SymbolRef{Symbol: "ETH-USD", Market: fut},
				),
			},
		},
	}

	entries := make(map[string][]models.SymbolRef)
	for _, cat := range categories {
		for key, val := range cat.table {
			if _, dup := entries[key]; dup {
				continue // earlier category wins
			}
			entries[key] = val
		}
	}

	return &AliasTable{categories: categories, entries: entries}
}

// Lookup resolves a keyword. The help keyword yields a literal reply; other
// keywords yield one or more symbol references.
func (t *AliasTable) Lookup(keyword string) Resolution {
	if keyword == HelpKeyword {
		return literal(t.HelpText())
	}
	members, ok := t.entries[keyword]
	if !ok {
		return none()
	}
	if len(members) == 1 {
		return single(members[0])
	}
	return many(members)
}

// HelpText renders the per-category command list. It is a pure function of
// the table and comes out the same on every call.
func (t *AliasTable) HelpText() string {
	var lines []string
	for _, cat := range t.categories {
		marked := make([]string, 0, len(cat.keys))
		for _, key := range cat.keys {
			marked = append(marked, "#"+key)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", cat.label, strings.Join(marked, ", ")))
		if cat.label == "指數" {
			lines = append(lines,
				"個股: #股票代號 (ex: #2330), #公司名稱 (ex: #台積電)",
				"當日走勢: P股票代號 (ex: P2330), P公司名稱 (ex: P台積電)",
				"技術分析: A大盤 A股票代號 (ex: A2330), A公司名稱 (ex: A台積電)",
				"三大法人買賣超: F大盤 F股票代號 (ex: F2330), F公司名稱 (ex: F台積電)",
			)
		}
	}
	return strings.Join(lines, "\n")
}

// Symbols returns every symbol any alias resolves to. Used by tests to hold
// the display-name invariant.
func (t *AliasTable) Symbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cat := range t.categories {
		for _, key := range cat.keys {
			for _, member := range cat.table[key] {
				if !seen[member.Symbol] {
					seen[member.Symbol] = true
					out = append(out, member.Symbol)
				}
			}
		}
	}
	return out
}

// displayNames overrides the provider's symbol name for every alias member,
// so a known alias never falls back to a raw ticker string.
var displayNames = map[string]string{
	"^TWII":    "台灣加權指數",
	"^TWOII":   "櫃買指數",
	"^N225":    "日經225",
	"^KS11":    "韓國KOSPI",
	"^GSPC":    "標普500",
	"^DJI":     "道瓊工業",
	"^IXIC":    "那斯達克",
	"^SOX":     "費城半導體",
	"ES=F":     "標普500期貨",
	"YM=F":     "道瓊期貨",
	"NQ=F":     "那斯達克期貨",
	"SOX=F":    "費半期貨",
	"TWD=X":    "USD/TWD",
	"JPYTWD=X": "JPY/TWD",
	"AUDTWD=X": "AUD/TWD",
	"GC=F":     "黃金",
	"SI=F":     "白銀",
	"CL=F":     "原油",
	"^FVX":     "美債5年殖利率",
	"^TNX":     "美債10年殖利率",
	"^TYX":     "美債30年殖利率",
	"BTC-USD":  "比特幣",
	"ETH-USD":  "以太幣",
}

// DisplayName returns the fixed name override for a symbol, if any.
func DisplayName(symbol string) (string, bool) {
	name, ok := displayNames[symbol]
	return name, ok
}
