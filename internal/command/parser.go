package command

import (
	"context"
	"strings"

	"github.com/adinKent/pharaoh/internal/format"
	"github.com/adinKent/pharaoh/internal/models"
	"github.com/adinKent/pharaoh/internal/trace"
)

// Fetch periods handed to the quote provider per command.
const (
	periodQuote    = "2d"
	periodAnalysis = "1y"
	periodIntraday = "1d"
)

// MarketKeyword targets the whole market instead of a single symbol in flow
// commands (F大盤).
const MarketKeyword = "大盤"

// QuoteProvider fetches one symbol's quote per market class. Implementations
// own retries, caching and timeouts; the parser only sees a quote or nil.
type QuoteProvider interface {
	DomesticEquityQuote(ctx context.Context, symbol, period string) (*models.Quote, error)
	ForeignEquityQuote(ctx context.Context, symbol, period string) (*models.Quote, error)
	IndexQuote(ctx context.Context, symbol, period string) (*models.Quote, error)
	FutureQuote(ctx context.Context, symbol, period string) (*models.Quote, error)
}

// NameResolver turns a CJK company name into a ticker symbol.
type NameResolver interface {
	SymbolFromCompanyName(ctx context.Context, name string) (string, error)
}

// FlowProvider fetches institutional buy/sell volumes.
type FlowProvider interface {
	MarketFlow(ctx context.Context) ([]models.MarketFlowRow, error)
	SymbolFlow(ctx context.Context, symbol string) (*models.InstitutionalFlow, error)
}

// Narrator generates a short narrative comment for a technical-analysis
// block. Optional; failures never drop the block.
type Narrator interface {
	Narrate(ctx context.Context, technicalBlock string) (string, error)
}

// ChartRenderer renders an intraday close series to a PNG. Optional.
type ChartRenderer interface {
	IntradayPNG(ctx context.Context, q *models.Quote) ([]byte, error)
}

// Reply is the parser's only product: text, an image, or both. A nil *Reply
// means the bot stays silent.
type Reply struct {
	Text     string
	ImagePNG []byte
}

// Parser is the command engine: prefix grammar, symbol resolution, provider
// dispatch, response formatting. Collaborators are injected at startup; the
// parser itself keeps no mutable state.
type Parser struct {
	classifier *Classifier
	quotes     QuoteProvider
	flows      FlowProvider
	narrator   Narrator
	chart      ChartRenderer
}

// Deps are the parser's collaborators. Quotes is required; Narrator, Chart
// and Flows may be nil, disabling the commands that need them.
type Deps struct {
	Aliases  *AliasTable
	Names    NameResolver
	Quotes   QuoteProvider
	Flows    FlowProvider
	Narrator Narrator
	Chart    ChartRenderer
}

func NewParser(deps Deps) *Parser {
	aliases := deps.Aliases
	if aliases == nil {
		aliases = NewAliasTable()
	}
	return &Parser{
		classifier: &Classifier{Aliases: aliases, Names: deps.Names},
		quotes:     deps.Quotes,
		flows:      deps.Flows,
		narrator:   deps.Narrator,
		chart:      deps.Chart,
	}
}

// Parse handles one inbound message. It returns nil when the text is not a
// bot command or when nothing resolved; the transport layer must not reply
// in that case. A panic anywhere downstream is swallowed into a nil reply so
// the bot prefers silence over a malformed message.
func (p *Parser) Parse(ctx context.Context, text string) (reply *Reply) {
	defer func() {
		if r := recover(); r != nil {
			trace.Logf(ctx, "command: recovered from panic: %v", r)
			reply = nil
		}
	}()

	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "#"):
		return p.quoteReply(ctx, strings.TrimPrefix(text, "#"))
	case strings.HasPrefix(text, "A"):
		return p.analysisReply(ctx, strings.TrimPrefix(text, "A"))
	case strings.HasPrefix(text, "F"):
		return p.flowReply(ctx, strings.TrimPrefix(text, "F"))
	case strings.HasPrefix(text, "P"):
		return p.chartReply(ctx, strings.TrimPrefix(text, "P"))
	}
	return nil
}

func (p *Parser) quoteReply(ctx context.Context, operand string) *Reply {
	res := p.classifier.Classify(ctx, operand)
	switch res.Kind {
	case ResolvedNone:
		return nil
	case ResolvedLiteral:
		return &Reply{Text: res.Literal}
	}

	quotes := p.fetchAll(ctx, res.Refs, periodQuote)
	text := format.MultiLine(quotes)
	if text == "" {
		return nil
	}
	return &Reply{Text: text}
}

func (p *Parser) analysisReply(ctx context.Context, operand string) *Reply {
	res := p.classifier.Classify(ctx, operand)
	switch res.Kind {
	case ResolvedNone:
		return nil
	case ResolvedLiteral:
		return &Reply{Text: res.Literal}
	}

	var blocks []string
	for _, quote := range p.fetchAll(ctx, res.Refs, periodAnalysis) {
		if quote == nil {
			continue
		}
		blocks = append(blocks, format.AnalysisBlock(quote))
	}
	if len(blocks) == 0 {
		return nil
	}
	text := strings.Join(blocks, "\n\n")

	if p.narrator != nil {
		narrative, err := p.narrator.Narrate(ctx, text)
		if err != nil {
			trace.Logf(ctx, "command: narrative generation failed: %v", err)
		} else if narrative != "" {
			text += "\n\n" + narrative
		}
	}
	return &Reply{Text: text}
}

func (p *Parser) flowReply(ctx context.Context, operand string) *Reply {
	if p.flows == nil {
		return nil
	}
	operand = stripWhitespace(operand)
	if operand == "" {
		return nil
	}

	if operand == MarketKeyword {
		rows, err := p.flows.MarketFlow(ctx)
		if err != nil {
			trace.Logf(ctx, "command: market flow fetch failed: %v", err)
			return nil
		}
		text := format.MarketFlowBlock(rows)
		if text == "" {
			return nil
		}
		return &Reply{Text: text}
	}

	res := p.classifier.Classify(ctx, operand)
	if res.Kind != ResolvedSingle || res.Refs[0].Market != models.DomesticEquity {
		// Flow data only exists for domestic symbols.
		return nil
	}
	flow, err := p.flows.SymbolFlow(ctx, res.Refs[0].Symbol)
	if err != nil {
		trace.Logf(ctx, "command: symbol flow fetch failed for %s: %v", res.Refs[0].Symbol, err)
		flow = nil
	}
	return &Reply{Text: format.SymbolFlowBlock(flow)}
}

func (p *Parser) chartReply(ctx context.Context, operand string) *Reply {
	res := p.classifier.Classify(ctx, operand)
	switch res.Kind {
	case ResolvedNone:
		return nil
	case ResolvedLiteral:
		return &Reply{Text: res.Literal}
	}

	quotes := p.fetchAll(ctx, res.Refs[:1], periodIntraday)
	quote := quotes[0]
	if quote == nil {
		return nil
	}
	line := format.PriceLine(quote)

	if p.chart != nil {
		png, err := p.chart.IntradayPNG(ctx, quote)
		if err != nil {
			trace.Logf(ctx, "command: chart render failed for %s: %v", quote.Symbol, err)
		} else {
			return &Reply{Text: line, ImagePNG: png}
		}
	}
	return &Reply{Text: line}
}

// fetchAll fetches every reference in declared order, sequentially. A failed
// member becomes nil and is omitted downstream instead of aborting the rest.
func (p *Parser) fetchAll(ctx context.Context, refs []models.SymbolRef, period string) []*models.Quote {
	out := make([]*models.Quote, 0, len(refs))
	for _, ref := range refs {
		quote, err := p.fetchOne(ctx, ref, period)
		if err != nil {
			trace.Logf(ctx, "command: quote fetch failed for %s (%s): %v", ref.Symbol, ref.Market, err)
			quote = nil
		}
		if quote != nil {
			if name, ok := DisplayName(quote.Symbol); ok {
				quote.Name = name
			}
		}
		out = append(out, quote)
	}
	return out
}

func (p *Parser) fetchOne(ctx context.Context, ref models.SymbolRef, period string) (*models.Quote, error) {
	switch ref.Market {
	case models.DomesticEquity:
		return p.quotes.DomesticEquityQuote(ctx, ref.Symbol, period)
	case models.ForeignEquity:
		return p.quotes.ForeignEquityQuote(ctx, ref.Symbol, period)
	case models.Index:
		return p.quotes.IndexQuote(ctx, ref.Symbol, period)
	case models.Future:
		return p.quotes.FutureQuote(ctx, ref.Symbol, period)
	}
	return nil, nil
}
