package dca

// predefined is the catalogue of well known instruments, in display order.
var predefined = Instruments{
	{"S&P 500", "^GSPC"},
	{"Nasdaq", "^IXIC"},
	{"SCHD", "SCHD"},
	{"Apple", "AAPL"},
	{"Google", "GOOGL"},
	{"Microsoft", "MSFT"},
	{"Amazon", "AMZN"},
	{"Tesla", "TSLA"},
	{"Nvidia", "NVDA"},
	{"Meta", "META"},
	{"Berkshire Hathaway", "BRK-B"},
	{"TSMC", "TSM"},
	{"Samsung Electronics", "005930.KS"},
	{"SK Hynix", "000660.KS"},
	{"Naver", "035420.KS"},
	{"Kakao", "035720.KS"},
	{"Hyundai Motor", "005380.KS"},
	{"Gold", "GC=F"},
	{"Bitcoin", "BTC-USD"},
	{"Ethereum", "ETH-USD"},
	{"QQQ", "QQQ"},
	{"SPY", "SPY"},
	{"TQQQ", "TQQQ"},
	{"SOXL", "SOXL"},
}

// Predefined returns a copy of the catalogue of well known instruments.
func Predefined() Instruments {
	return append(Instruments(nil), predefined...)
}

// DefaultInstruments returns the default selection: S&P 500, Nasdaq and SCHD.
func DefaultInstruments() Instruments {
	return append(Instruments(nil), predefined[:3]...)
}

// Lookup returns the predefined instrument with that symbol.
func Lookup(symbol string) (Instrument, bool) {
	for _, in := range predefined {
		if in.Symbol == symbol {
			return in, true
		}
	}
	return Instrument{}, false
}
