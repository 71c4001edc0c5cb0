package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

type memTx struct {
	st *state
}

func (t *memTx) PoolBalance(_ context.Context, currency string) (decimal.Decimal, error) {
	balance, ok := t.st.pools[currency]
	if !ok {
		return decimal.Zero, domain.ErrRecordNotFound
	}
	return balance, nil
}

func (t *memTx) AdjustPool(_ context.Context, currency string, delta decimal.Decimal) error {
	balance, ok := t.st.pools[currency]
	if !ok {
		return domain.ErrRecordNotFound
	}
	next := balance.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientPoolFunds
	}
	t.st.pools[currency] = next
	return nil
}

func (t *memTx) Pools(_ context.Context) ([]domain.CurrencyPool, error) {
	pools := make([]domain.CurrencyPool, 0, len(t.st.pools))
	for currency, balance := range t.st.pools {
		pools = append(pools, domain.CurrencyPool{Currency: currency, Balance: balance})
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].Currency < pools[j].Currency })
	return pools, nil
}

func (t *memTx) ClientByID(_ context.Context, clientID int64) (domain.Client, error) {
	client, ok := t.st.clients[clientID]
	if !ok {
		return domain.Client{}, domain.ErrRecordNotFound
	}
	return client, nil
}

func (t *memTx) AddDepositProfit(_ context.Context, clientID int64, amount decimal.Decimal) error {
	client, ok := t.st.clients[clientID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	client.DepositProfit = client.DepositProfit.Add(amount)
	t.st.clients[clientID] = client
	return nil
}

func (t *memTx) DepositByOwner(_ context.Context, clientID int64) (domain.Deposit, error) {
	for _, deposit := range t.st.deposits {
		if deposit.OwnerID == clientID {
			return deposit, nil
		}
	}
	return domain.Deposit{}, domain.ErrRecordNotFound
}

func (t *memTx) CreateDeposit(_ context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	deposit.ID = t.st.nextID
	t.st.nextID++
	t.st.deposits[deposit.ID] = deposit
	return deposit, nil
}

func (t *memTx) DeleteDeposit(_ context.Context, depositID int64) error {
	if _, ok := t.st.deposits[depositID]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(t.st.deposits, depositID)
	return nil
}

func (t *memTx) CardByID(_ context.Context, cardID int64) (domain.Card, error) {
	card, ok := t.st.cards[cardID]
	if !ok {
		return domain.Card{}, domain.ErrRecordNotFound
	}
	return card, nil
}

func (t *memTx) CardsByOwner(_ context.Context, clientID int64) ([]domain.Card, error) {
	var cards []domain.Card
	for _, card := range t.st.cards {
		if card.OwnerID == clientID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

func (t *memTx) CreateCard(_ context.Context, card domain.Card) (domain.Card, error) {
	card.ID = t.st.nextID
	t.st.nextID++
	t.st.cards[card.ID] = card
	return card, nil
}

func (t *memTx) DeleteCard(_ context.Context, cardID int64) error {
	if _, ok := t.st.cards[cardID]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(t.st.cards, cardID)
	return nil
}

func (t *memTx) AdjustCardBalance(_ context.Context, cardID int64, delta decimal.Decimal) error {
	card, ok := t.st.cards[cardID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	next := card.Balance.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientCardFunds
	}
	card.Balance = next
	t.st.cards[cardID] = card
	return nil
}

func (t *memTx) NextDepositOperationID(_ context.Context) (int64, error) {
	var max int64
	for id := range t.st.depositOps {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

func (t *memTx) NextCardOperationID(_ context.Context) (int64, error) {
	var max int64
	for id := range t.st.cardOps {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

func (t *memTx) AppendDepositOperation(_ context.Context, op domain.DepositOperation) (domain.DepositOperation, error) {
	t.st.depositOps[op.ID] = op
	return op, nil
}

func (t *memTx) DepositOperationByID(_ context.Context, operationID int64) (domain.DepositOperation, error) {
	op, ok := t.st.depositOps[operationID]
	if !ok {
		return domain.DepositOperation{}, domain.ErrRecordNotFound
	}
	return op, nil
}

func (t *memTx) SetDepositOperationStatus(_ context.Context, operationID int64, status domain.OperationStatus) error {
	op, ok := t.st.depositOps[operationID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	op.Status = status
	t.st.depositOps[operationID] = op
	return nil
}

func (t *memTx) HasPendingDepositOperation(_ context.Context, clientID int64) (bool, error) {
	for _, op := range t.st.depositOps {
		if op.ClientID == clientID && op.Status == domain.OperationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) PendingDepositOperations(_ context.Context) ([]domain.DepositOperation, error) {
	var ops []domain.DepositOperation
	for _, op := range t.st.depositOps {
		if op.Status == domain.OperationStatusPending {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].ID < ops[j].ID })
	return ops, nil
}

func (t *memTx) AppendCardOperation(_ context.Context, op domain.CardOperation) (domain.CardOperation, error) {
	t.st.cardOps[op.ID] = op
	return op, nil
}

func (t *memTx) CardOperationByID(_ context.Context, operationID int64) (domain.CardOperation, error) {
	op, ok := t.st.cardOps[operationID]
	if !ok {
		return domain.CardOperation{}, domain.ErrRecordNotFound
	}
	return op, nil
}

func (t *memTx) SetCardOperationStatus(_ context.Context, operationID int64, status domain.OperationStatus) error {
	op, ok := t.st.cardOps[operationID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	op.Status = status
	t.st.cardOps[operationID] = op
	return nil
}

func (t *memTx) HasPendingCardOperation(_ context.Context, clientID int64, cardID *int64) (bool, error) {
	for _, op := range t.st.cardOps {
		if op.ClientID != clientID || op.Status != domain.OperationStatusPending {
			continue
		}
		if cardID == nil && op.CardID == nil {
			return true, nil
		}
		if cardID != nil && op.CardID != nil && *cardID == *op.CardID {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) PendingCardOperations(_ context.Context) ([]domain.CardOperation, error) {
	var ops []domain.CardOperation
	for _, op := range t.st.cardOps {
		if op.Status == domain.OperationStatusPending {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].ID < ops[j].ID })
	return ops, nil
}
