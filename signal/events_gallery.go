package signal

const (
	EventWalletConnected           = "wallet.connected"
	EventWalletProviderAbsent      = "wallet.providerAbsent"
	EventGalleryItemsUpdated       = "gallery.itemsUpdated"
	EventGalleryStoreUninitialized = "gallery.storeUninitialized"
)

// WalletConnectedSignal carries the address a session connected with.
type WalletConnectedSignal struct {
	Session string `json:"session"`
	Address string `json:"address"`
	Trusted bool   `json:"trusted"`
}

// WalletProviderAbsentSignal asks the view to show the missing wallet warning.
type WalletProviderAbsentSignal struct {
	Session string `json:"session"`
	Message string `json:"message"`
}

// GalleryItemsUpdatedSignal is sent after every successful fetch.
type GalleryItemsUpdatedSignal struct {
	Session string `json:"session"`
	Count   int    `json:"count"`
}

// GalleryStoreUninitializedSignal is sent when the backing account is missing.
type GalleryStoreUninitializedSignal struct {
	Session string `json:"session"`
	Account string `json:"account"`
}

func SendWalletConnected(session, address string, trusted bool) {
	send(EventWalletConnected, WalletConnectedSignal{Session: session, Address: address, Trusted: trusted})
}

func SendWalletProviderAbsent(session, message string) {
	send(EventWalletProviderAbsent, WalletProviderAbsentSignal{Session: session, Message: message})
}

func SendGalleryItemsUpdated(session string, count int) {
	send(EventGalleryItemsUpdated, GalleryItemsUpdatedSignal{Session: session, Count: count})
}

func SendGalleryStoreUninitialized(session, account string) {
	send(EventGalleryStoreUninitialized, GalleryStoreUninitializedSignal{Session: session, Account: account})
}
