package entity

import "fmt"

// AppleStatus is the status code returned by the App Store receipt
// verification endpoints. The set is closed: codes outside this table are
// reported with the numeric code rather than falling through to a known
// message.
type AppleStatus int

const (
	AppleStatusValid               AppleStatus = 0
	AppleStatusUnreadable          AppleStatus = 21000
	AppleStatusMalformed           AppleStatus = 21002
	AppleStatusUnauthenticated     AppleStatus = 21003
	AppleStatusBadSharedSecret     AppleStatus = 21004
	AppleStatusServerUnavailable   AppleStatus = 21005
	AppleStatusSubscriptionExpired AppleStatus = 21006
	AppleStatusSandboxOnProduction AppleStatus = 21007
	AppleStatusProductionOnSandbox AppleStatus = 21008
)

var appleStatusMessages = map[AppleStatus]string{
	AppleStatusUnreadable:          "App Store non può leggere il receipt",
	AppleStatusMalformed:           "Dati del receipt malformati",
	AppleStatusUnauthenticated:     "Receipt non autenticato",
	AppleStatusBadSharedSecret:     "Shared secret non corretto",
	AppleStatusServerUnavailable:   "Server receipt non disponibile",
	AppleStatusSubscriptionExpired: "Receipt valido ma subscription scaduta",
	AppleStatusSandboxOnProduction: "Receipt da sandbox in produzione",
	AppleStatusProductionOnSandbox: "Receipt da produzione in sandbox",
}

func (s AppleStatus) Message() string {
	if msg, ok := appleStatusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("Verifica fallita: codice %d", s)
}
