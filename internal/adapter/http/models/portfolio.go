package models

type DepositView struct {
	ID        int64  `json:"id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"createdAt"`
}

type CardView struct {
	ID               int64  `json:"id"`
	Currency         string `json:"currency"`
	Balance          string `json:"balance"`
	Number           string `json:"number"`
	CVC              int    `json:"cvc"`
	ExpMonth         int    `json:"expMonth"`
	ExpYear          int    `json:"expYear"`
	PendingOperation bool   `json:"pendingOperation"`
}

type PortfolioResponse struct {
	Deposit           *DepositView `json:"deposit,omitempty"`
	Cards             []CardView   `json:"cards"`
	DepositProfit     string       `json:"depositProfit"`
	HasActiveDeposit  bool         `json:"hasActiveDeposit"`
	HasPendingDeposit bool         `json:"hasPendingDeposit"`
}

type PoolResponse struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}
