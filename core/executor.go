package core

import (
	"github.com/sirupsen/logrus"
)

// Config holds the ambient network parameters the executor consults. A
// given network has one fixed Config for its lifetime.
type Config struct {
	NetworkID             uint8
	MinTransactionFee     Amount
	MinDelegateBurnAmount Amount
}

// TransactionExecutor is a stateless state machine: it holds only its
// network Config, never touches any store outside the two staged views
// passed to Execute, and performs no I/O. A single instance may be
// reused across calls and goroutines, provided each call is given views
// no other activity is concurrently using.
//
// Its guard-list validation style — structural checks, then nonce, then
// balance, then apply, short-circuiting on first failure — follows the
// same sequential shape as a typical transaction pool's ValidateTx.
type TransactionExecutor struct {
	config Config
	log    *logrus.Entry
}

// NewTransactionExecutor builds an executor bound to config.
func NewTransactionExecutor(config Config) *TransactionExecutor {
	return &TransactionExecutor{
		config: config,
		log:    logrus.WithField("component", "executor"),
	}
}

// Execute validates tx against current rules and the balances visible
// through accounts/delegates, and — only if every guard passes — applies
// its state deltas to those staged views and advances the sender's nonce.
// On any guard failure, accounts and delegates are left byte-for-byte
// unmutated and the returned result carries the specific ErrorKind; no
// nonce increment occurs. Execute itself never calls Commit or discards
// anything — that is the caller's responsibility.
func (e *TransactionExecutor) Execute(tx *Transaction, accounts *AccountView, delegates *DelegateView) TransactionResult {
	if err := tx.Validate(e.config.NetworkID); err != nil {
		e.log.WithError(err).Debug("transaction failed structural validation")
		return failure(ErrInvalidFormatKind)
	}
	if tx.Fee < e.config.MinTransactionFee {
		e.log.WithFields(logrus.Fields{
			"from": tx.From, "fee": tx.Fee, "min_fee": e.config.MinTransactionFee,
		}).Debug("fee below network minimum")
		return failure(ErrInvalidFee)
	}

	account := accounts.GetAccount(tx.From)
	if account.Nonce != tx.Nonce {
		e.log.WithFields(logrus.Fields{
			"from": tx.From, "want": account.Nonce, "got": tx.Nonce,
		}).Debug("nonce mismatch")
		return failure(ErrInvalidNonce)
	}

	var result TransactionResult
	switch tx.Kind {
	case TRANSFER:
		result = e.applyTransfer(tx, accounts, account)
	case DELEGATE:
		result = e.applyDelegate(tx, accounts, delegates, account)
	case VOTE:
		result = e.applyVote(tx, accounts, delegates, account)
	case UNVOTE:
		result = e.applyUnvote(tx, accounts, delegates, account)
	default:
		e.log.WithField("kind", tx.Kind).Warn("unknown transaction kind")
		return failure(ErrInvalid)
	}

	if !result.Success {
		e.log.WithFields(logrus.Fields{
			"from": tx.From, "kind": tx.Kind, "error": result.Error,
		}).Warn("transaction rejected")
		return result
	}

	accounts.IncreaseNonce(tx.From)
	return result
}

// applyTransfer moves value from tx.From to tx.To, deducting value+fee
// from the sender's available balance.
func (e *TransactionExecutor) applyTransfer(tx *Transaction, accounts *AccountView, account Account) TransactionResult {
	cost, err := Sum(tx.Value, tx.Fee)
	if err != nil {
		// Validate does not bound Value or Fee, so this is reached only when
		// value+fee exceeds Amount's range; it is surfaced as a loud
		// invariant violation rather than silently miscomputing a transfer.
		panic(err)
	}
	if account.Available < cost {
		return failure(ErrInsufficientAvail)
	}
	accounts.AdjustAvailable(tx.From, -int64(cost))
	accounts.AdjustAvailable(tx.To, int64(tx.Value))
	return success("transfer applied")
}

// applyDelegate burns the configured delegate registration bond and
// registers tx.From under the name carried in tx.Data.
func (e *TransactionExecutor) applyDelegate(tx *Transaction, accounts *AccountView, delegates *DelegateView, account Account) TransactionResult {
	if tx.To != EmptyAddress {
		return failure(ErrInvalid)
	}
	if tx.Value != e.config.MinDelegateBurnAmount {
		return failure(ErrInvalid)
	}
	cost, err := Sum(tx.Value, tx.Fee)
	if err != nil {
		panic(err)
	}
	if account.Available < cost {
		return failure(ErrInsufficientAvail)
	}
	if !ValidateDelegateName(tx.Data) {
		return failure(ErrInvalidDelegating)
	}
	if !delegates.Register(tx.From, tx.Data) {
		return failure(ErrInvalidDelegating)
	}
	accounts.AdjustAvailable(tx.From, -int64(cost))
	return success("delegate registered")
}

// applyVote locks value out of tx.From's available balance and stakes it
// on the delegate at tx.To.
func (e *TransactionExecutor) applyVote(tx *Transaction, accounts *AccountView, delegates *DelegateView, account Account) TransactionResult {
	if _, ok := delegates.GetDelegateByAddress(tx.To); !ok {
		return failure(ErrInvalidVoting)
	}
	cost, err := Sum(tx.Value, tx.Fee)
	if err != nil {
		panic(err)
	}
	if account.Available < cost {
		return failure(ErrInsufficientAvail)
	}
	accounts.AdjustAvailable(tx.From, -int64(cost))
	accounts.AdjustLocked(tx.From, int64(tx.Value))
	if !delegates.Vote(tx.From, tx.To, tx.Value) {
		// Unreachable: the GetDelegateByAddress check above already
		// established tx.To is registered, so Vote cannot fail here.
		panic("core: Vote failed after delegate existence was already confirmed")
	}
	return success("vote applied")
}

// applyUnvote unstakes value from the (tx.From, tx.To) vote edge, moves
// it from locked back to available, and deducts fee from the net result.
// Because value can be smaller than fee, the net effect on available is
// computed as a signed (value - fee) rather than requiring value >= fee
// outright; the transaction fails INSUFFICIENT_AVAILABLE whenever
// available(from) + value < fee, before any state is mutated.
func (e *TransactionExecutor) applyUnvote(tx *Transaction, accounts *AccountView, delegates *DelegateView, account Account) TransactionResult {
	if _, ok := delegates.GetDelegateByAddress(tx.To); !ok {
		return failure(ErrInvalidVoting)
	}
	netAvailablePlusValue, err := Sum(account.Available, tx.Value)
	if err != nil {
		panic(err)
	}
	if netAvailablePlusValue < tx.Fee {
		return failure(ErrInsufficientAvail)
	}
	edgeAmount := delegates.VoteOf(tx.From, tx.To)
	if edgeAmount < tx.Value || account.Locked < tx.Value {
		return failure(ErrInsufficientLocked)
	}

	if !delegates.Unvote(tx.From, tx.To, tx.Value) {
		// Unreachable: both preconditions (edge and locked amount) were
		// just checked above.
		panic("core: Unvote failed after its preconditions were already confirmed")
	}
	accounts.AdjustLocked(tx.From, -int64(tx.Value))

	// net = value - fee, applied as a signed delta on available.
	netDelta := int64(tx.Value) - int64(tx.Fee)
	accounts.AdjustAvailable(tx.From, netDelta)
	return success("unvote applied")
}
