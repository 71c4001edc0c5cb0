package domain

import "github.com/shopspring/decimal"

type Role string

const (
	RoleClient        Role = "Client"
	RoleManager       Role = "Manager"
	RoleAdministrator Role = "Administrator"
)

// Principal is the authenticated caller, as forwarded by the upstream
// authentication gateway.
type Principal struct {
	ClientID int64
	Role     Role
}

// Client carries the back-office view of a client record. DepositProfit is the
// cumulative interest paid out to the client on deposit closures; it only ever
// grows, and only inside a settlement transaction.
type Client struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	DepositProfit decimal.Decimal
}
