package csvfeed

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/exchangecore/matchcore"
)

var outputHeader = []string{"orderId", "side", "executionType", "orderSize", "lastQuantity", "cumulativeQuantity", "price"}

// WriteReports serializes reports to w as the output CSV format named in
// spec §6, in the order given (which must be generation order for the
// output to be meaningful).
func WriteReports(w io.Writer, reports []matchcore.ExecutionReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputHeader); err != nil {
		return err
	}
	for _, r := range reports {
		if err := cw.Write(reportRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func reportRow(r matchcore.ExecutionReport) []string {
	price := ""
	if r.HasPrice() {
		price = r.Price.String()
	}
	return []string{
		r.OrderID.String(),
		r.Side.String(),
		r.Type.String(),
		strconv.FormatUint(r.OrderSize, 10),
		strconv.FormatUint(r.LastQuantity, 10),
		strconv.FormatUint(r.CumulativeQuantity, 10),
		price,
	}
}
