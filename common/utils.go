package common

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/status-im/arcadia/logutils"
)

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return reflect.ValueOf(i).IsNil()
	}
	return false
}

func LogOnPanic() {
	if err := recover(); err != nil {
		logutils.ZapLogger().Error("panic in goroutine", zap.Any("error", err), zap.Stack("stacktrace"))
		panic(err)
	}
}

// ShortenAddress keeps the first and last keep characters of addr and joins
// them with an ellipsis. Short addresses are returned unchanged.
func ShortenAddress(addr string, keep int) string {
	if keep <= 0 || len(addr) <= 2*keep+3 {
		return addr
	}
	return addr[:keep] + "..." + addr[len(addr)-keep:]
}
