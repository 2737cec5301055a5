package money

// Code represents an asset code (e.g., "USD", "BTC").
type Code string

// Supported asset codes. The set is closed: anything else is rejected
// before it can reach a ledger record.
const (
	USD Code = "USD" // US Dollar
	IDR Code = "IDR" // Indonesian Rupiah
	BTC Code = "BTC" // Bitcoin
	ETH Code = "ETH" // Ether
	SOL Code = "SOL" // Solana
)

// Currency describes a supported asset.
type Currency struct {
	Code     Code
	Name     string
	Symbol   string
	Decimals int32
	Crypto   bool
}

var currencies = map[Code]Currency{
	USD: {Code: USD, Name: "US Dollar", Symbol: "$", Decimals: 2},
	IDR: {Code: IDR, Name: "Indonesian Rupiah", Symbol: "Rp", Decimals: 2},
	BTC: {Code: BTC, Name: "Bitcoin", Symbol: "₿", Decimals: 8, Crypto: true},
	ETH: {Code: ETH, Name: "Ether", Symbol: "Ξ", Decimals: 18, Crypto: true},
	SOL: {Code: SOL, Name: "Solana", Symbol: "◎", Decimals: 9, Crypto: true},
}

// order is the presentation order used by summaries.
var order = []Code{USD, IDR, BTC, ETH, SOL}
