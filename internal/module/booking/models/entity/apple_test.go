package entity_test

import (
	"testing"

	"seaboo-server/internal/module/booking/models/entity"

	"github.com/stretchr/testify/assert"
)

func TestAppleStatusMessage(t *testing.T) {
	testCases := []struct {
		name     string
		status   entity.AppleStatus
		expected string
	}{
		{name: "unreadable", status: entity.AppleStatusUnreadable, expected: "App Store non può leggere il receipt"},
		{name: "malformed", status: entity.AppleStatusMalformed, expected: "Dati del receipt malformati"},
		{name: "unauthenticated", status: entity.AppleStatusUnauthenticated, expected: "Receipt non autenticato"},
		{name: "bad shared secret", status: entity.AppleStatusBadSharedSecret, expected: "Shared secret non corretto"},
		{name: "server unavailable", status: entity.AppleStatusServerUnavailable, expected: "Server receipt non disponibile"},
		{name: "subscription expired", status: entity.AppleStatusSubscriptionExpired, expected: "Receipt valido ma subscription scaduta"},
		{name: "sandbox receipt on production", status: entity.AppleStatusSandboxOnProduction, expected: "Receipt da sandbox in produzione"},
		{name: "production receipt on sandbox", status: entity.AppleStatusProductionOnSandbox, expected: "Receipt da produzione in sandbox"},
		{name: "unknown code", status: entity.AppleStatus(21010), expected: "Verifica fallita: codice 21010"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.Message())
		})
	}
}
