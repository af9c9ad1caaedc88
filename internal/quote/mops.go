package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const mopsAutoCompleteURL = "https://mopsov.twse.com.tw/mops/web/ajax_autoComplete"

// mopsResolver resolves a CJK company name to its ticker via the MOPS
// autocomplete endpoint. The first suggestion's value attribute carries the
// symbol.
type mopsResolver struct {
	httpClient *http.Client
}

func newMOPSResolver(timeout time.Duration) *mopsResolver {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &mopsResolver{httpClient: &http.Client{Timeout: timeout}}
}

// SymbolFromCompanyName returns the ticker for a company name, or "" when
// MOPS has no suggestion.
func (r *mopsResolver) SymbolFromCompanyName(ctx context.Context, name string) (string, error) {
	payload := fmt.Sprintf(
		"encodeURIComponent=1&step=1&firstin=ture&off=1&keyword4=&code1=&TYPEK2=&checkbtn=&queryName=co_id&inpuType=co_id&TYPEK=all&co_id=%s&sstep=1",
		url.QueryEscape(name),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mopsAutoCompleteURL, strings.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("POST %s: status %d", mopsAutoCompleteURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	symbol, _ := doc.Find("#autoDiv-1").Attr("value")
	return symbol, nil
}

func readAll(resp *http.Response) ([]byte, error) {
	return io.ReadAll(resp.Body)
}
