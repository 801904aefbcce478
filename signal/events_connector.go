package signal

const (
	EventConnectorRequestAccounts = "connector.requestAccounts"
	EventConnectorGrantRevoked    = "connector.grantRevoked"
)

// ConnectorRequestAccountsSignal is triggered when the gallery asks the
// wallet to share an account and the user has to approve it.
type ConnectorRequestAccountsSignal struct {
	RequestID string `json:"requestId"`
	Origin    string `json:"origin"`
	Account   string `json:"account"`
}

// ConnectorGrantRevokedSignal is triggered when a trusted grant is removed.
type ConnectorGrantRevokedSignal struct {
	Origin string `json:"origin"`
}

func SendConnectorRequestAccounts(requestID, origin, account string) {
	send(EventConnectorRequestAccounts, ConnectorRequestAccountsSignal{
		RequestID: requestID,
		Origin:    origin,
		Account:   account,
	})
}

func SendConnectorGrantRevoked(origin string) {
	send(EventConnectorGrantRevoked, ConnectorGrantRevokedSignal{Origin: origin})
}
