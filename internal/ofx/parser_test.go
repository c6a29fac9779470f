package ofx

import (
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2026011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260120120000[0:GMT]
<TRNAMT>2500.00
<FITID>2026012001
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20260125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2026012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2026011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2026011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
			expectedError: false,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
			expectedError: false,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedCount: 0,
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedCount: 0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()
			reader := strings.NewReader(tt.ofxData)

			drafts, err := parser.ParseFile(reader)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, drafts, tt.expectedCount)
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser()
	reader := strings.NewReader(sampleBankOFX)

	drafts, err := parser.ParseFile(reader)
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	// Debits become expenses with unsigned amounts
	d1 := drafts[0]
	assert.Equal(t, "2026011501", d1.FiTID)
	assert.Equal(t, "STARBUCKS STORE #1234", d1.Description)
	assert.Equal(t, model.TransactionTypeExpense, d1.Type)
	assert.InDelta(t, 25.50, d1.Amount, 0.001)
	assert.Equal(t, "1234567890", d1.AccountID)
	assert.Equal(t, 2026, d1.Date.Year())
	assert.Equal(t, time.January, d1.Date.Month())
	assert.Equal(t, 15, d1.Date.Day())

	// Credits become income
	d2 := drafts[1]
	assert.Equal(t, "2026012001", d2.FiTID)
	assert.Equal(t, model.TransactionTypeIncome, d2.Type)
	assert.InDelta(t, 2500.00, d2.Amount, 0.001)

	d3 := drafts[2]
	assert.Equal(t, "2026012501", d3.FiTID)
	assert.Equal(t, model.TransactionTypeExpense, d3.Type)
	assert.InDelta(t, 500.00, d3.Amount, 0.001)
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser()
	reader := strings.NewReader(sampleCreditCardOFX)

	drafts, err := parser.ParseFile(reader)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	d1 := drafts[0]
	assert.Equal(t, "CC2026011001", d1.FiTID)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", d1.Description)
	assert.InDelta(t, 45.99, d1.Amount, 0.001)
	assert.Equal(t, "4111111111111111", d1.AccountID)

	d2 := drafts[1]
	assert.Equal(t, "CC2026011501", d2.FiTID)
	assert.Equal(t, "NETFLIX.COM", d2.Description)
	assert.InDelta(t, 15.00, d2.Amount, 0.001)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    "POS PURCHASE STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    "DEBIT CARD PURCHASE WHOLE FOODS",
			expected: "WHOLE FOODS",
		},
		{
			name:     "keep clean name",
			input:    "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			input:    "  AMAZON.COM  ",
			expected: "AMAZON.COM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.input),
			}
			result := parser.extractMerchantName(tx)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDraftHash(t *testing.T) {
	d1 := Draft{
		FiTID:       "TX001",
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "STARBUCKS",
		Amount:      25.50,
		AccountID:   "123456",
		Type:        model.TransactionTypeExpense,
	}
	d2 := d1

	// Same fields hash the same
	assert.Equal(t, d1.hash(), d2.hash())

	// Different amount should produce different hash
	d3 := d1
	d3.Amount = 30.00
	assert.NotEqual(t, d1.hash(), d3.hash())

	// Different date should produce different hash
	d4 := d1
	d4.Date = time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)
	assert.NotEqual(t, d1.hash(), d4.hash())
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()

	reader := strings.NewReader(sampleBankOFX)
	accounts, err := parser.GetAccounts(reader)
	require.NoError(t, err)
	assert.Contains(t, accounts, "1234567890")

	reader = strings.NewReader(sampleCreditCardOFX)
	accounts, err = parser.GetAccounts(reader)
	require.NoError(t, err)
	assert.Contains(t, accounts, "4111111111111111")
}
