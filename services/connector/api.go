package connector

import (
	"github.com/status-im/arcadia/services/connector/commands"
	persistence "github.com/status-im/arcadia/services/connector/database"
)

// API is what a client uses to answer account requests and manage grants.
type API struct {
	s *Service
	c *commands.ClientSideHandler
}

func NewAPI(s *Service, c *commands.ClientSideHandler) *API {
	return &API{
		s: s,
		c: c,
	}
}

func (api *API) RequestAccountsAccepted(args commands.RequestAccountsAcceptedArgs) error {
	return api.c.RequestAccountsAccepted(args)
}

func (api *API) RequestAccountsRejected(args commands.RequestAccountsRejectedArgs) error {
	return api.c.RequestAccountsRejected(args)
}

func (api *API) RecallGrant(origin string) error {
	return api.s.RevokeGrant(origin)
}

func (api *API) Grants() ([]persistence.Grant, error) {
	return api.s.Grants()
}
