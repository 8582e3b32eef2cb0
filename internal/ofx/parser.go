// Package ofx parses OFX/QFX bank exports into ledger entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

// Entry is one statement line, normalized: the amount is always positive
// and the kind carries the direction.
type Entry struct {
	Date        time.Time
	Description string
	AccountID   string
	Kind        model.TransactionKind
	Amount      model.Money
}

// Parser reads OFX/QFX statements.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes common formatting issues in real-world OFX files.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing bracket on a bare tag.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile reads an OFX/QFX statement and returns its entries.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			accountID := string(stmt.BankAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convert(ofxTx, accountID))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			accountID := string(stmt.CCAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convert(ofxTx, accountID))
			}
		}
	}

	slog.Info("parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

// convert maps one OFX transaction onto an entry. OFX signs amounts from
// the account's point of view: negative is money out, positive is money in.
func (p *Parser) convert(ofxTx ofxgo.Transaction, accountID string) Entry {
	kind := model.TransactionIncome
	amount := &ofxTx.TrnAmt.Rat
	if amount.Sign() < 0 {
		kind = model.TransactionExpense
		amount = new(big.Rat).Neg(amount)
	}

	return Entry{
		Date:        ofxTx.DtPosted.Time.UTC(),
		Description: p.describe(ofxTx),
		AccountID:   accountID,
		Kind:        kind,
		Amount:      ratToMoney(amount),
	}
}

// ratToMoney converts an exact OFX amount to cents, rounding half up.
func ratToMoney(r *big.Rat) model.Money {
	cents := new(big.Rat).Mul(r, big.NewRat(100, 1))
	num := cents.Num()
	den := cents.Denom()

	// Add half the denominator before dividing to round half up.
	half := new(big.Int).Rsh(den, 1)
	rounded := new(big.Int).Add(num, half)
	rounded.Quo(rounded, den)

	return model.Money{Cents: rounded.Int64()}
}

// describe picks the cleanest description available for a statement line.
func (p *Parser) describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" && isGeneric(name) {
		name = memo
	}
	if name == "" {
		name = fmt.Sprintf("%v transaction", tx.TrnType)
	}
	return name
}

// isGeneric reports whether a NAME field says nothing useful.
func isGeneric(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "CHECK", "PAYMENT", "POS", "ACH", "WITHDRAWAL", "DEPOSIT":
		return true
	}
	return false
}
