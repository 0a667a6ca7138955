package api

import "time"

// Node defaults
const (
	DefaultTimeout = 30 * time.Second

	MainnetNethash = "6e84d08bd299ed97c212c886c98a57e36545c8f5d645ca7eeae63a8bd62d8988"
	DevnetNethash  = "578e820911f24e039733b45e4882b73e301f813a0d2c31330dafda84534ffa23"

	// nodes cap limit at this value for every paginated endpoint
	MaxPageSize = 51
	// size of the forging delegate set
	ActiveDelegates = 51
)

// Price ticker
const (
	TickerURL    = "https://min-api.cryptocompare.com/data/price"
	TickerSymbol = "ARK"
)

// TickerCurrencies lists the codes requested from the price ticker.
var TickerCurrencies = []string{
	"AUD", "BRL", "BTC", "CAD", "CLP", "CNY", "CZK", "DKK", "EUR",
	"GBP", "HKD", "IDR", "INR", "JPY", "KRW", "MXN", "NOK", "NZD",
	"PHP", "PKR", "RUB", "SEK", "THB", "TWD", "USD",
}

// Header names attached to node requests.
const (
	HeaderNethash = "nethash"
	HeaderVersion = "version"
	HeaderPort    = "port"
)
