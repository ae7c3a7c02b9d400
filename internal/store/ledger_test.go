package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandar-wallet/internal/domain"
)

func TestLedgerInitAccount(t *testing.T) {
	ledger := NewLedgerStore()

	ledger.InitAccount("user-1", 0)
	assert.Equal(t, int64(0), ledger.GetBalance("user-1"))

	// Re-initialization must not clobber the balance
	ledger.Credit("user-1", 5000, "tx-1", "credit", time.Now())
	ledger.InitAccount("user-1", 0)
	assert.Equal(t, int64(5000), ledger.GetBalance("user-1"))
}

func TestLedgerCreditAndDebit(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)

	ledger.Credit("user-1", 10000, "tx-1", "initial", time.Now())
	ledger.Debit("user-1", 3000, "tx-2", "test debit", time.Now())

	assert.Equal(t, int64(7000), ledger.GetBalance("user-1"))
}

func TestLedgerEntryCarriesRunningBalance(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)

	entry := ledger.Credit("user-1", 5000, "tx-1", "test", time.Now())

	assert.Equal(t, domain.EntryCredit, entry.Type)
	assert.Equal(t, int64(5000), entry.Amount)
	assert.Equal(t, int64(5000), entry.BalanceAfter)
	assert.Equal(t, "le-1", entry.ID)
}

func TestLedgerRecordDeposit(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)

	tx := ledger.RecordDeposit("user-1", 5000, "tx-1", "ref-1", time.Now())

	require.NotNil(t, tx)
	assert.Equal(t, domain.TransactionCredit, tx.Type)
	assert.Equal(t, int64(5000), tx.BalanceAfter)
	assert.Equal(t, int64(5000), ledger.GetBalance("user-1"))
	assert.Equal(t, int64(-5000), ledger.GetBalance(SystemAccount))
	assert.True(t, ledger.VerifyIntegrity())
}

func TestLedgerDepositCreatesBalancedEntryPair(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)

	ledger.RecordDeposit("user-1", 5000, "tx-1", "ref-1", time.Now())

	var debits, credits int
	for _, entry := range ledger.Entries() {
		require.Equal(t, "tx-1", entry.TransactionID)
		switch entry.Type {
		case domain.EntryDebit:
			debits++
			assert.Equal(t, SystemAccount, entry.AccountID)
		case domain.EntryCredit:
			credits++
			assert.Equal(t, "user-1", entry.AccountID)
		}
	}
	assert.Equal(t, 1, debits)
	assert.Equal(t, 1, credits)
}

func TestLedgerRecordWithdrawal(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)

	ledger.RecordDeposit("user-1", 10000, "tx-1", "ref-1", time.Now())
	tx := ledger.RecordWithdrawal("user-1", 3000, "tx-2", "ref-2", time.Now())

	assert.Equal(t, domain.TransactionWithdraw, tx.Type)
	assert.Equal(t, int64(7000), tx.BalanceAfter)
	assert.Equal(t, int64(7000), ledger.GetBalance("user-1"))
	assert.True(t, ledger.VerifyIntegrity())
}

func TestLedgerIntegrityAfterMixedOperations(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)
	ledger.InitAccount("user-2", 0)

	ledger.RecordDeposit("user-1", 10000, "tx-1", "ref-1", time.Now())
	ledger.RecordDeposit("user-2", 5000, "tx-2", "ref-2", time.Now())
	ledger.RecordWithdrawal("user-1", 2000, "tx-3", "ref-3", time.Now())
	ledger.RecordDeposit("user-1", 1000, "tx-4", "ref-4", time.Now())
	ledger.RecordWithdrawal("user-2", 5000, "tx-5", "ref-5", time.Now())

	assert.True(t, ledger.VerifyIntegrity())
	assert.Equal(t, int64(9000), ledger.GetBalance("user-1"))
	assert.Equal(t, int64(0), ledger.GetBalance("user-2"))
}

func TestLedgerTransactionsMostRecentFirst(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)

	ledger.RecordDeposit("user-1", 5000, "tx-1", "ref-1", time.Now())
	ledger.RecordDeposit("user-1", 3000, "tx-2", "ref-2", time.Now())
	ledger.RecordWithdrawal("user-1", 1000, "tx-3", "ref-3", time.Now())

	txs := ledger.GetUserTransactions("user-1")
	require.Len(t, txs, 3)
	assert.Equal(t, "tx-3", txs[0].ID)
	assert.Equal(t, "tx-2", txs[1].ID)
	assert.Equal(t, "tx-1", txs[2].ID)
	assert.Equal(t, domain.TransactionWithdraw, txs[0].Type)
	assert.Equal(t, domain.TransactionCredit, txs[1].Type)
}

func TestLedgerUnknownAccounts(t *testing.T) {
	ledger := NewLedgerStore()

	assert.Equal(t, int64(0), ledger.GetBalance("non-existent"))
	assert.Empty(t, ledger.GetUserTransactions("non-existent"))
}

func TestLedgerReset(t *testing.T) {
	ledger := NewLedgerStore()
	ledger.InitAccount("user-1", 0)
	ledger.RecordDeposit("user-1", 5000, "tx-1", "ref-1", time.Now())

	ledger.Reset()

	assert.Equal(t, int64(0), ledger.GetBalance("user-1"))
	assert.Equal(t, int64(0), ledger.GetBalance(SystemAccount))
	assert.Empty(t, ledger.Entries())
	assert.True(t, ledger.VerifyIntegrity())
}
