package metrics

import (
	"github.com/status-im/arcadia/errors"

	prom "github.com/prometheus/client_golang/prometheus"
)

const resultOK = "ok"

var (
	walletConnects = prom.NewCounterVec(prom.CounterOpts{
		Name: "arcadia_wallet_connects_total",
		Help: "Wallet connection attempts split by mode and result.",
	}, []string{"mode", "result"})
	storeCalls = prom.NewCounterVec(prom.CounterOpts{
		Name: "arcadia_store_calls_total",
		Help: "Record store calls split by operation and result.",
	}, []string{"op", "result"})
	galleryItems = prom.NewGauge(prom.GaugeOpts{
		Name: "arcadia_gallery_items",
		Help: "Number of items in the most recently fetched collection.",
	})
)

func init() {
	prom.MustRegister(walletConnects)
	prom.MustRegister(storeCalls)
	prom.MustRegister(galleryItems)
}

// result maps err to a bounded label value: "ok" or the error code.
func result(err error) string {
	if err == nil {
		return resultOK
	}
	return string(errors.CodeOf(err))
}

// RecordWalletConnect counts a connection attempt. Trusted attempts are the
// silent probes made on page load.
func RecordWalletConnect(trusted bool, err error) {
	mode := "interactive"
	if trusted {
		mode = "trusted"
	}
	walletConnects.WithLabelValues(mode, result(err)).Inc()
}

// RecordStoreCall counts one record store operation.
func RecordStoreCall(op string, err error) {
	storeCalls.WithLabelValues(op, result(err)).Inc()
}

// SetGalleryItems reports the size of a freshly fetched collection.
func SetGalleryItems(n int) {
	galleryItems.Set(float64(n))
}
