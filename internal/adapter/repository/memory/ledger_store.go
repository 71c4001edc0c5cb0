// Package memory holds an in-memory LedgerStore with the same transactional
// contract as the postgres store. Service tests run against it; it is also a
// convenient backend for local experiments without a database.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/repo_interfaces"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

var _ repo_interfaces.LedgerStore = (*Store)(nil)

type state struct {
	pools      map[string]decimal.Decimal
	clients    map[int64]domain.Client
	deposits   map[int64]domain.Deposit
	cards      map[int64]domain.Card
	depositOps map[int64]domain.DepositOperation
	cardOps    map[int64]domain.CardOperation
	nextID     int64
}

type Store struct {
	mu sync.Mutex
	st state
}

func NewStore() *Store {
	return &Store{st: state{
		pools:      make(map[string]decimal.Decimal),
		clients:    make(map[int64]domain.Client),
		deposits:   make(map[int64]domain.Deposit),
		cards:      make(map[int64]domain.Card),
		depositOps: make(map[int64]domain.DepositOperation),
		cardOps:    make(map[int64]domain.CardOperation),
		nextID:     1,
	}}
}

// Within serializes all transactions behind the store mutex and works on a
// copy of the state, so a failed fn leaves the store untouched.
func (s *Store) Within(ctx context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()
	if err := fn(&memTx{st: &work}); err != nil {
		return err
	}

	s.st = work
	return nil
}

func (s state) clone() state {
	out := state{
		pools:      make(map[string]decimal.Decimal, len(s.pools)),
		clients:    make(map[int64]domain.Client, len(s.clients)),
		deposits:   make(map[int64]domain.Deposit, len(s.deposits)),
		cards:      make(map[int64]domain.Card, len(s.cards)),
		depositOps: make(map[int64]domain.DepositOperation, len(s.depositOps)),
		cardOps:    make(map[int64]domain.CardOperation, len(s.cardOps)),
		nextID:     s.nextID,
	}
	for k, v := range s.pools {
		out.pools[k] = v
	}
	for k, v := range s.clients {
		out.clients[k] = v
	}
	for k, v := range s.deposits {
		out.deposits[k] = v
	}
	for k, v := range s.cards {
		out.cards[k] = v
	}
	for k, v := range s.depositOps {
		out.depositOps[k] = v
	}
	for k, v := range s.cardOps {
		if v.CardID != nil {
			id := *v.CardID
			v.CardID = &id
		}
		out.cardOps[k] = v
	}
	return out
}

// Seed helpers for tests and local bootstrapping.

func (s *Store) SeedPool(currency string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.pools[currency] = balance
}

func (s *Store) SeedClient(client domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.clients[client.ID] = client
}

func (s *Store) SeedDeposit(deposit domain.Deposit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if deposit.ID == 0 {
		deposit.ID = s.st.nextID
		s.st.nextID++
	}
	s.st.deposits[deposit.ID] = deposit
}

func (s *Store) SeedCard(card domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card.ID == 0 {
		card.ID = s.st.nextID
		s.st.nextID++
	}
	s.st.cards[card.ID] = card
}
