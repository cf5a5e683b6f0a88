package console

import (
	"bufio"
	"fmt"
	"io"

	"github.com/robotomize/pbrates"
	"github.com/robotomize/pbrates/provider"
)

const (
	codeUSD = "USD"
	codeEUR = "EUR"
)

// Render prints the results in the order given. A failure is one Error line, a success is the Date line
// followed by the USD and EUR lines when the archive has them. Only the EUR block ends with a blank line
func Render(w io.Writer, results []pbrates.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		renderResult(bw, r)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write rates: %w", err)
	}

	return nil
}

func renderResult(w io.Writer, r pbrates.Result) {
	if !r.OK() {
		fmt.Fprintf(w, "Error: %s\n", r.Reason)
		return
	}

	fmt.Fprintf(w, "Date: %s\n", r.Archive.Date)

	if q, ok := r.Archive.Find(codeUSD); ok {
		fmt.Fprintf(w, "%s\n", quoteLine(q))
	}

	if q, ok := r.Archive.Find(codeEUR); ok {
		fmt.Fprintf(w, "%s\n\n", quoteLine(q))
	}
}

func quoteLine(q provider.Quote) string {
	return fmt.Sprintf("%s: Buy - %s, Sell - %s", q.Currency, q.PurchaseRateNB, q.SaleRateNB)
}
