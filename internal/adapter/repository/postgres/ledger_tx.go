package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
)

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) PoolBalance(ctx context.Context, currency string) (decimal.Decimal, error) {
	const query = `
SELECT balance
FROM currency_pools
WHERE currency = $1
FOR UPDATE`

	var balance decimal.Decimal
	if err := t.tx.QueryRowContext(ctx, query, currency).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrRecordNotFound
		}
		return decimal.Zero, fmt.Errorf("get pool balance: %w", err)
	}

	return balance, nil
}

func (t *ledgerTx) AdjustPool(ctx context.Context, currency string, delta decimal.Decimal) error {
	const query = `
UPDATE currency_pools
SET balance = balance + $2::numeric
WHERE currency = $1
  AND balance + $2::numeric >= 0`

	result, err := t.tx.ExecContext(ctx, query, currency, delta)
	if err != nil {
		logger.Error("ledger tx adjust pool failed", err, logger.Fields{
			"currency": currency,
			"delta":    delta.String(),
		})
		return fmt.Errorf("adjust pool: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust pool rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		err := t.tx.QueryRowContext(ctx, `SELECT 1 FROM currency_pools WHERE currency = $1`, currency).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("check pool: %w", err)
		}
		return domain.ErrInsufficientPoolFunds
	}

	return nil
}

func (t *ledgerTx) Pools(ctx context.Context) ([]domain.CurrencyPool, error) {
	const query = `
SELECT currency, balance
FROM currency_pools
ORDER BY currency`

	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	defer rows.Close()

	var pools []domain.CurrencyPool
	for rows.Next() {
		var pool domain.CurrencyPool
		if err := rows.Scan(&pool.Currency, &pool.Balance); err != nil {
			return nil, fmt.Errorf("scan pool: %w", err)
		}
		pools = append(pools, pool)
	}

	return pools, rows.Err()
}

func (t *ledgerTx) ClientByID(ctx context.Context, clientID int64) (domain.Client, error) {
	const query = `
SELECT id, first_name, last_name, email, deposit_profit
FROM clients
WHERE id = $1`

	var client domain.Client
	err := t.tx.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Email,
		&client.DepositProfit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrRecordNotFound
		}
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}

	return client, nil
}

func (t *ledgerTx) AddDepositProfit(ctx context.Context, clientID int64, amount decimal.Decimal) error {
	const query = `
UPDATE clients
SET deposit_profit = deposit_profit + $2::numeric
WHERE id = $1`

	result, err := t.tx.ExecContext(ctx, query, clientID, amount)
	if err != nil {
		return fmt.Errorf("add deposit profit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add deposit profit rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (t *ledgerTx) DepositByOwner(ctx context.Context, clientID int64) (domain.Deposit, error) {
	const query = `
SELECT id, owner_id, currency, balance, created_at
FROM deposits
WHERE owner_id = $1
FOR UPDATE`

	var deposit domain.Deposit
	err := t.tx.QueryRowContext(ctx, query, clientID).Scan(
		&deposit.ID,
		&deposit.OwnerID,
		&deposit.Currency,
		&deposit.Balance,
		&deposit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Deposit{}, domain.ErrRecordNotFound
		}
		return domain.Deposit{}, fmt.Errorf("get deposit by owner: %w", err)
	}

	return deposit, nil
}

func (t *ledgerTx) CreateDeposit(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	const query = `
INSERT INTO deposits (owner_id, currency, balance, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	err := t.tx.QueryRowContext(
		ctx,
		query,
		deposit.OwnerID,
		deposit.Currency,
		deposit.Balance,
		deposit.CreatedAt,
	).Scan(&deposit.ID)
	if err != nil {
		logger.Error("ledger tx create deposit failed", err, logger.Fields{
			"ownerId": deposit.OwnerID,
		})
		return domain.Deposit{}, fmt.Errorf("create deposit: %w", err)
	}

	return deposit, nil
}

func (t *ledgerTx) DeleteDeposit(ctx context.Context, depositID int64) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM deposits WHERE id = $1`, depositID)
	if err != nil {
		return fmt.Errorf("delete deposit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deposit rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (t *ledgerTx) CardByID(ctx context.Context, cardID int64) (domain.Card, error) {
	const query = `
SELECT id, owner_id, currency, balance, card_num, cvc, exp_month, exp_year, created_at
FROM cards
WHERE id = $1
FOR UPDATE`

	var card domain.Card
	err := t.tx.QueryRowContext(ctx, query, cardID).Scan(
		&card.ID,
		&card.OwnerID,
		&card.Currency,
		&card.Balance,
		&card.Number,
		&card.CVC,
		&card.ExpMonth,
		&card.ExpYear,
		&card.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, domain.ErrRecordNotFound
		}
		return domain.Card{}, fmt.Errorf("get card: %w", err)
	}

	return card, nil
}

func (t *ledgerTx) CardsByOwner(ctx context.Context, clientID int64) ([]domain.Card, error) {
	const query = `
SELECT id, owner_id, currency, balance, card_num, cvc, exp_month, exp_year, created_at
FROM cards
WHERE owner_id = $1
ORDER BY id`

	rows, err := t.tx.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list cards by owner: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.OwnerID,
			&card.Currency,
			&card.Balance,
			&card.Number,
			&card.CVC,
			&card.ExpMonth,
			&card.ExpYear,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

func (t *ledgerTx) CreateCard(ctx context.Context, card domain.Card) (domain.Card, error) {
	const query = `
INSERT INTO cards (owner_id, currency, balance, card_num, cvc, exp_month, exp_year, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	err := t.tx.QueryRowContext(
		ctx,
		query,
		card.OwnerID,
		card.Currency,
		card.Balance,
		card.Number,
		card.CVC,
		card.ExpMonth,
		card.ExpYear,
		card.CreatedAt,
	).Scan(&card.ID)
	if err != nil {
		logger.Error("ledger tx create card failed", err, logger.Fields{
			"ownerId": card.OwnerID,
		})
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}

	return card, nil
}

func (t *ledgerTx) DeleteCard(ctx context.Context, cardID int64) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, cardID)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (t *ledgerTx) AdjustCardBalance(ctx context.Context, cardID int64, delta decimal.Decimal) error {
	const query = `
UPDATE cards
SET balance = balance + $2::numeric
WHERE id = $1
  AND balance + $2::numeric >= 0`

	result, err := t.tx.ExecContext(ctx, query, cardID, delta)
	if err != nil {
		logger.Error("ledger tx adjust card balance failed", err, logger.Fields{
			"cardId": cardID,
			"delta":  delta.String(),
		})
		return fmt.Errorf("adjust card balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust card balance rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		err := t.tx.QueryRowContext(ctx, `SELECT 1 FROM cards WHERE id = $1`, cardID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("check card: %w", err)
		}
		return domain.ErrInsufficientCardFunds
	}

	return nil
}

// Sequence ids are max+1 over the stream, computed inside the serializable
// transaction that also inserts the entry, so concurrent intakes cannot
// allocate the same id.
func (t *ledgerTx) NextDepositOperationID(ctx context.Context) (int64, error) {
	return t.nextOperationID(ctx, `SELECT COALESCE(MAX(operation_id), 0) + 1 FROM deposit_operations`)
}

func (t *ledgerTx) NextCardOperationID(ctx context.Context) (int64, error) {
	return t.nextOperationID(ctx, `SELECT COALESCE(MAX(operation_id), 0) + 1 FROM card_operations`)
}

func (t *ledgerTx) nextOperationID(ctx context.Context, query string) (int64, error) {
	var next int64
	if err := t.tx.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, fmt.Errorf("next operation id: %w", err)
	}
	return next, nil
}

func (t *ledgerTx) AppendDepositOperation(ctx context.Context, op domain.DepositOperation) (domain.DepositOperation, error) {
	const query = `
INSERT INTO deposit_operations (operation_id, client_id, amount, currency, action, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := t.tx.ExecContext(
		ctx,
		query,
		op.ID,
		op.ClientID,
		op.Amount,
		op.Currency,
		op.Action,
		op.Status,
		op.CreatedAt,
	); err != nil {
		logger.Error("ledger tx append deposit operation failed", err, logger.Fields{
			"operationId": op.ID,
			"clientId":    op.ClientID,
		})
		return domain.DepositOperation{}, fmt.Errorf("append deposit operation: %w", err)
	}

	return op, nil
}

func (t *ledgerTx) DepositOperationByID(ctx context.Context, operationID int64) (domain.DepositOperation, error) {
	const query = `
SELECT operation_id, client_id, amount, currency, action, status, created_at
FROM deposit_operations
WHERE operation_id = $1
FOR UPDATE`

	var op domain.DepositOperation
	err := t.tx.QueryRowContext(ctx, query, operationID).Scan(
		&op.ID,
		&op.ClientID,
		&op.Amount,
		&op.Currency,
		&op.Action,
		&op.Status,
		&op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DepositOperation{}, domain.ErrRecordNotFound
		}
		return domain.DepositOperation{}, fmt.Errorf("get deposit operation: %w", err)
	}

	return op, nil
}

func (t *ledgerTx) SetDepositOperationStatus(ctx context.Context, operationID int64, status domain.OperationStatus) error {
	return t.setOperationStatus(ctx, `UPDATE deposit_operations SET status = $2 WHERE operation_id = $1`, operationID, status)
}

func (t *ledgerTx) SetCardOperationStatus(ctx context.Context, operationID int64, status domain.OperationStatus) error {
	return t.setOperationStatus(ctx, `UPDATE card_operations SET status = $2 WHERE operation_id = $1`, operationID, status)
}

func (t *ledgerTx) setOperationStatus(ctx context.Context, query string, operationID int64, status domain.OperationStatus) error {
	result, err := t.tx.ExecContext(ctx, query, operationID, status)
	if err != nil {
		return fmt.Errorf("set operation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set operation status rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (t *ledgerTx) HasPendingDepositOperation(ctx context.Context, clientID int64) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM deposit_operations
	WHERE client_id = $1
	  AND status = $2
)`

	var pending bool
	if err := t.tx.QueryRowContext(ctx, query, clientID, domain.OperationStatusPending).Scan(&pending); err != nil {
		return false, fmt.Errorf("check pending deposit operation: %w", err)
	}

	return pending, nil
}

func (t *ledgerTx) PendingDepositOperations(ctx context.Context) ([]domain.DepositOperation, error) {
	const query = `
SELECT operation_id, client_id, amount, currency, action, status, created_at
FROM deposit_operations
WHERE status = $1
ORDER BY operation_id`

	rows, err := t.tx.QueryContext(ctx, query, domain.OperationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending deposit operations: %w", err)
	}
	defer rows.Close()

	var ops []domain.DepositOperation
	for rows.Next() {
		var op domain.DepositOperation
		if err := rows.Scan(
			&op.ID,
			&op.ClientID,
			&op.Amount,
			&op.Currency,
			&op.Action,
			&op.Status,
			&op.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deposit operation: %w", err)
		}
		ops = append(ops, op)
	}

	return ops, rows.Err()
}

func (t *ledgerTx) AppendCardOperation(ctx context.Context, op domain.CardOperation) (domain.CardOperation, error) {
	const query = `
INSERT INTO card_operations (operation_id, client_id, amount, currency, action, status, card_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := t.tx.ExecContext(
		ctx,
		query,
		op.ID,
		op.ClientID,
		op.Amount,
		op.Currency,
		op.Action,
		op.Status,
		op.CardID,
		op.CreatedAt,
	); err != nil {
		logger.Error("ledger tx append card operation failed", err, logger.Fields{
			"operationId": op.ID,
			"clientId":    op.ClientID,
		})
		return domain.CardOperation{}, fmt.Errorf("append card operation: %w", err)
	}

	return op, nil
}

func (t *ledgerTx) CardOperationByID(ctx context.Context, operationID int64) (domain.CardOperation, error) {
	const query = `
SELECT operation_id, client_id, amount, currency, action, status, card_id, created_at
FROM card_operations
WHERE operation_id = $1
FOR UPDATE`

	var op domain.CardOperation
	var cardID sql.NullInt64
	err := t.tx.QueryRowContext(ctx, query, operationID).Scan(
		&op.ID,
		&op.ClientID,
		&op.Amount,
		&op.Currency,
		&op.Action,
		&op.Status,
		&cardID,
		&op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CardOperation{}, domain.ErrRecordNotFound
		}
		return domain.CardOperation{}, fmt.Errorf("get card operation: %w", err)
	}

	if cardID.Valid {
		value := cardID.Int64
		op.CardID = &value
	}

	return op, nil
}

func (t *ledgerTx) HasPendingCardOperation(ctx context.Context, clientID int64, cardID *int64) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM card_operations
	WHERE client_id = $1
	  AND status = $2
	  AND (($3::bigint IS NULL AND card_id IS NULL) OR card_id = $3::bigint)
)`

	var pending bool
	if err := t.tx.QueryRowContext(ctx, query, clientID, domain.OperationStatusPending, cardID).Scan(&pending); err != nil {
		return false, fmt.Errorf("check pending card operation: %w", err)
	}

	return pending, nil
}

func (t *ledgerTx) PendingCardOperations(ctx context.Context) ([]domain.CardOperation, error) {
	const query = `
SELECT operation_id, client_id, amount, currency, action, status, card_id, created_at
FROM card_operations
WHERE status = $1
ORDER BY operation_id`

	rows, err := t.tx.QueryContext(ctx, query, domain.OperationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending card operations: %w", err)
	}
	defer rows.Close()

	var ops []domain.CardOperation
	for rows.Next() {
		var op domain.CardOperation
		var cardID sql.NullInt64
		if err := rows.Scan(
			&op.ID,
			&op.ClientID,
			&op.Amount,
			&op.Currency,
			&op.Action,
			&op.Status,
			&cardID,
			&op.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card operation: %w", err)
		}
		if cardID.Valid {
			value := cardID.Int64
			op.CardID = &value
		}
		ops = append(ops, op)
	}

	return ops, rows.Err()
}
