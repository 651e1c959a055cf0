// Package upi builds UPI deep-link payment requests.
package upi

import (
	"fmt"
	"net/url"
	"strings"
)

// TransactionNote is the fixed note attached to every payment request.
const TransactionNote = "Habit Accountability Payment"

// Request describes one peer-to-peer penalty settlement.
type Request struct {
	PayeeAddress string
	PayeeName    string
	Amount       int
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.PayeeAddress) == "" || !strings.Contains(r.PayeeAddress, "@") {
		return fmt.Errorf("payee address %q is not a upi id", r.PayeeAddress)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", r.Amount)
	}
	return nil
}

// PayURI renders the upi://pay deep link. The payee address and amount
// stay unescaped, UPI apps expect them verbatim.
func (r Request) PayURI() string {
	name := r.PayeeName
	if name == "" {
		name = "Friend"
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&tn=%s",
		r.PayeeAddress,
		url.QueryEscape(name),
		r.Amount,
		url.QueryEscape(TransactionNote),
	)
}
