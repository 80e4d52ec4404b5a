package matchcore

import "testing"

func TestOrderTypeString(t *testing.T) {
	if Limit.String() != "LIMIT" {
		t.Errorf("Limit.String() = %q, want LIMIT", Limit.String())
	}
	if Market.String() != "MARKET" {
		t.Errorf("Market.String() = %q, want MARKET", Market.String())
	}
	if OrderType(2).String() != "UNKNOWN" {
		t.Errorf("OrderType(2).String() = %q, want UNKNOWN", OrderType(2).String())
	}
}
