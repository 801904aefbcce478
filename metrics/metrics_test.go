package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	arcerrors "github.com/status-im/arcadia/errors"
)

func TestRecordWalletConnect(t *testing.T) {
	denied := &arcerrors.ErrorResponse{Code: arcerrors.ErrorCode("TST-001"), Details: "denied"}

	before := testutil.ToFloat64(walletConnects.WithLabelValues("trusted", "TST-001"))
	RecordWalletConnect(true, denied)
	RecordWalletConnect(true, denied)
	require.Equal(t, before+2, testutil.ToFloat64(walletConnects.WithLabelValues("trusted", "TST-001")))

	before = testutil.ToFloat64(walletConnects.WithLabelValues("interactive", resultOK))
	RecordWalletConnect(false, nil)
	require.Equal(t, before+1, testutil.ToFloat64(walletConnects.WithLabelValues("interactive", resultOK)))
}

func TestRecordStoreCallUsesGenericCodeForPlainErrors(t *testing.T) {
	before := testutil.ToFloat64(storeCalls.WithLabelValues("fetch", string(arcerrors.GenericErrorCode)))
	RecordStoreCall("fetch", errors.New("boom"))
	require.Equal(t, before+1, testutil.ToFloat64(storeCalls.WithLabelValues("fetch", string(arcerrors.GenericErrorCode))))
}

func TestHandlers(t *testing.T) {
	SetGalleryItems(3)

	rec := httptest.NewRecorder()
	HealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "arcadia_gallery_items 3"))
}
