package ledger

import (
	"fmt"
	"time"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/money"
)

// CryptoReceivedCategory is the category of transactions created from UTXOs.
const CryptoReceivedCategory = "Crypto_Received"

// SyncResult summarises one blockchain sync.
type SyncResult struct {
	Fetched  int           `json:"fetched"`
	Recorded int           `json:"recorded"`
	Skipped  int           `json:"skipped"`
	Added    []Transaction `json:"added"`
}

func utxoDescription(u bitcoin.UTXO) string {
	return fmt.Sprintf("BTC UTXO received (txid: %s, vout: %d)", u.TxID, u.Vout)
}

// hasUTXO reports whether a transaction for the outpoint (txid, vout) of u
// already exists. Transactions recorded without a vout field are matched
// on their full description instead.
func (r *Record) hasUTXO(u bitcoin.UTXO) bool {
	desc := utxoDescription(u)
	for _, t := range r.Transactions {
		if t.Source != SourceBlockchain || t.TxID != u.TxID {
			continue
		}
		if t.Vout != nil {
			if *t.Vout == u.Vout {
				return true
			}
			continue
		}
		if t.Description == desc {
			return true
		}
	}
	return false
}

// SyncUTXOs records every UTXO not already present as an incoming BTC
// transaction. Running it twice on the same set records nothing new.
func (r *Record) SyncUTXOs(utxos []bitcoin.UTXO, now time.Time) (SyncResult, error) {
	res := SyncResult{Fetched: len(utxos), Added: []Transaction{}}
	for _, u := range utxos {
		amount := bitcoin.SatoshisToBTC(u.Value)
		vout := u.Vout
		if !amount.IsPositive() || r.hasUTXO(u) {
			res.Skipped++
			continue
		}
		tx, err := r.AddTransaction(Transaction{
			Amount:        amount,
			Currency:      money.BTC,
			Description:   utxoDescription(u),
			IsIncome:      true,
			Timestamp:     now,
			Date:          now.UTC().Format(time.DateTime),
			Category:      CryptoReceivedCategory,
			Type:          TypeReceived,
			Source:        SourceBlockchain,
			TxID:          u.TxID,
			Vout:          &vout,
			Confirmations: u.Confirmations,
		}, now)
		if err != nil {
			return res, err
		}
		res.Recorded++
		res.Added = append(res.Added, tx)
	}
	return res, nil
}
