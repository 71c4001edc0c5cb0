package models

import (
	"errors"
	"strings"
)

type ResolveRequest struct {
	Decision string `json:"decision"`
}

func (r ResolveRequest) Validate() error {
	decision := strings.ToUpper(strings.TrimSpace(r.Decision))
	if decision != "APPROVE" && decision != "REJECT" {
		return errors.New("decision must be approve or reject")
	}
	return nil
}

type PendingOperationsResponse struct {
	DepositOperations []OperationResponse `json:"depositOperations"`
	CardOperations    []OperationResponse `json:"cardOperations"`
}
