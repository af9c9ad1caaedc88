// Package chart renders an intraday close series to a PNG by templating an
// HTML page with an SVG polyline and screenshotting it in headless Chrome.
package chart

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/adinKent/pharaoh/internal/format"
	"github.com/adinKent/pharaoh/internal/models"
)

const (
	imageWidth    = 900
	imageHeight   = 520
	plotWidth     = 820.0
	plotHeight    = 360.0
	renderTimeout = 20 * time.Second
)

// Renderer implements the command layer's ChartRenderer.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

type chartView struct {
	Title      string
	PriceLine  string
	Class      string
	Points     string
	PrevCloseY string
	Timestamp  string
}

// IntradayPNG renders the quote's close history as a trend line against the
// previous close. Needs at least two samples.
func (r *Renderer) IntradayPNG(ctx context.Context, q *models.Quote) ([]byte, error) {
	if len(q.History) < 2 {
		return nil, fmt.Errorf("chart: not enough intraday samples for %s (%d)", q.Symbol, len(q.History))
	}

	view := chartView{
		Title:      fmt.Sprintf("%s (%s) 當日走勢", q.Name, q.Symbol),
		PriceLine:  format.PriceLine(q),
		Class:      trendClass(q.Direction),
		Points:     polylinePoints(q.History, q.PreviousClose),
		PrevCloseY: prevCloseY(q.History, q.PreviousClose),
		Timestamp:  time.Now().Format("2006-01-02 15:04"),
	}

	html, err := renderChartHTML(view)
	if err != nil {
		return nil, err
	}
	return renderHTMLToPNG(ctx, html, imageWidth, imageHeight)
}

func trendClass(d models.Direction) string {
	switch d {
	case models.Up:
		return "up"
	case models.Down:
		return "down"
	}
	return "flat"
}

// seriesBounds widens the min/max to include the previous close so the
// reference line always fits inside the plot.
func seriesBounds(history []float64, prevClose float64) (min, max float64) {
	min, max = history[0], history[0]
	for _, v := range history {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if prevClose != 0 {
		if prevClose < min {
			min = prevClose
		}
		if prevClose > max {
			max = prevClose
		}
	}
	if max == min {
		max = min + 1 // flat series still needs a drawable span
	}
	return min, max
}

func yFor(v, min, max float64) float64 {
	return plotHeight - (v-min)/(max-min)*plotHeight
}

func polylinePoints(history []float64, prevClose float64) string {
	min, max := seriesBounds(history, prevClose)
	step := plotWidth / float64(len(history)-1)

	var b strings.Builder
	for i, v := range history {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", float64(i)*step, yFor(v, min, max))
	}
	return b.String()
}

func prevCloseY(history []float64, prevClose float64) string {
	if prevClose == 0 {
		return ""
	}
	min, max := seriesBounds(history, prevClose)
	return fmt.Sprintf("%.1f", yFor(prevClose, min, max))
}

func renderChartHTML(view chartView) (string, error) {
	tpl, err := template.New("chart").Parse(chartHTMLTemplate)
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	if err := tpl.Execute(&builder, view); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func renderHTMLToPNG(parent context.Context, html string, width, height int64) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(width, height),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(200*time.Millisecond),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

const chartHTMLTemplate = `<!DOCTYPE html>
<html lang="zh">
<head>
  <meta charset="UTF-8" />
  <style>
    :root {
      --bg: #ffffff;
      --text: #1f1f1f;
      --muted: #6f6f6f;
      --line: #e8e8e8;
      --up: #d83a3a;
      --down: #1ca05c;
      --flat: #8f8f8f;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      background: var(--bg);
      font-family: "PingFang TC", "Microsoft JhengHei", sans-serif;
      color: var(--text);
    }
    .container { width: 860px; padding: 24px 32px 28px 32px; }
    .title { font-size: 26px; font-weight: 600; margin-bottom: 6px; }
    .price { font-size: 18px; margin-bottom: 16px; }
    .up { color: var(--up); }
    .down { color: var(--down); }
    .flat { color: var(--flat); }
    svg { background: #fbfbfb; border: 1px solid var(--line); }
    .footer { margin-top: 10px; font-size: 13px; color: var(--muted); }
  </style>
</head>
<body>
  <div class="container">
    <div class="title">{{.Title}}</div>
    <div class="price {{.Class}}">{{.PriceLine}}</div>
    <svg width="820" height="360" viewBox="0 0 820 360">
      {{if .PrevCloseY}}
      <line x1="0" y1="{{.PrevCloseY}}" x2="820" y2="{{.PrevCloseY}}"
            stroke="#8fb3ff" stroke-width="1" stroke-dasharray="6,4" />
      {{end}}
      <polyline points="{{.Points}}" fill="none"
                class="{{.Class}}" stroke="currentColor" stroke-width="1.6" />
    </svg>
    <div class="footer">更新時間：{{.Timestamp}}</div>
  </div>
</body>
</html>`
