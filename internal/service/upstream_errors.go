package service

import (
	"errors"
	"fmt"
	"net/http"

	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"
)

var nodoFaultCategories = map[string]apperror.FaultCategory{
	"PPT_DOMINIO_DISABILITATO":            apperror.FaultConfiguration,
	"PPT_STAZIONE_INT_PA_DISABILITATA":    apperror.FaultConfiguration,
	"PPT_INTERMEDIARIO_PA_DISABILITATO":   apperror.FaultConfiguration,
	"PPT_INTERMEDIARIO_PSP_DISABILITATO":  apperror.FaultConfiguration,
	"PPT_PSP_DISABILITATO":                apperror.FaultConfiguration,
	"PPT_CANALE_DISABILITATO":             apperror.FaultConfiguration,
	"PPT_AUTORIZZAZIONE":                  apperror.FaultConfiguration,
	"PPT_DOMINIO_SCONOSCIUTO":             apperror.FaultValidation,
	"PPT_STAZIONE_INT_PA_SCONOSCIUTA":     apperror.FaultValidation,
	"PPT_SINTASSI_EXTRAXSD":               apperror.FaultValidation,
	"PPT_SINTASSI_XSD":                    apperror.FaultValidation,
	"PAA_PAGAMENTO_SCONOSCIUTO":           apperror.FaultValidation,
	"PPT_STAZIONE_INT_PA_IRRAGGIUNGIBILE": apperror.FaultGateway,
	"PPT_STAZIONE_INT_PA_ERRORE_RESPONSE": apperror.FaultGateway,
	"PPT_SYSTEM_ERROR":                    apperror.FaultGateway,
	"PAA_SYSTEM_ERROR":                    apperror.FaultGateway,
	"PPT_STAZIONE_INT_PA_TIMEOUT":         apperror.FaultTimeout,
	"PAA_PAGAMENTO_IN_CORSO":              apperror.FaultPaymentStatus,
	"PPT_PAGAMENTO_IN_CORSO":              apperror.FaultPaymentStatus,
	"PAA_PAGAMENTO_DUPLICATO":             apperror.FaultPaymentStatus,
	"PPT_PAGAMENTO_DUPLICATO":             apperror.FaultPaymentStatus,
	"PAA_PAGAMENTO_SCADUTO":               apperror.FaultPaymentStatus,
	"PAA_PAGAMENTO_ANNULLATO":             apperror.FaultPaymentStatus,
}

// nodoFaultCategory classifies a hub fault code. Unknown codes are gateway faults.
func nodoFaultCategory(faultCode string) apperror.FaultCategory {
	if c, ok := nodoFaultCategories[faultCode]; ok {
		return c
	}
	return apperror.FaultGateway
}

// mapNodoError turns a hub client failure into an application error.
func mapNodoError(err error) error {
	var fault *ports.NodoFaultError
	if errors.As(err, &fault) {
		return apperror.UpstreamFault(nodoFaultCategory(fault.FaultCode), fault.FaultCode)
	}

	var gwErr *ports.GatewayError
	if errors.As(err, &gwErr) {
		if gwErr.Timeout || gwErr.StatusCode == http.StatusGatewayTimeout {
			return apperror.GatewayTimeout("Payment hub timed out", err)
		}
		return apperror.BadGateway("Payment hub unavailable", err)
	}
	return err
}

// mapAuthorizationError applies the authorization request error policy:
// 401 means the gateway already processed the request, 504 and timeouts are
// gateway timeouts, transport failures and other 5xx are bad gateways.
// Anything else is passed through.
func mapAuthorizationError(transactionID string, err error) error {
	var gwErr *ports.GatewayError
	if !errors.As(err, &gwErr) {
		return err
	}

	switch {
	case gwErr.StatusCode == http.StatusUnauthorized:
		return apperror.AlreadyProcessed(transactionID)
	case gwErr.Timeout || gwErr.StatusCode == http.StatusGatewayTimeout:
		return apperror.GatewayTimeout(fmt.Sprintf("%s timed out", gwErr.Gateway), err)
	case gwErr.StatusCode == 0 || gwErr.StatusCode >= http.StatusInternalServerError:
		return apperror.BadGateway(fmt.Sprintf("%s unavailable", gwErr.Gateway), err)
	default:
		return err
	}
}

// isTransient reports whether a gateway call is worth retrying.
func isTransient(err error) bool {
	var gwErr *ports.GatewayError
	if !errors.As(err, &gwErr) {
		return false
	}
	return gwErr.StatusCode == 0 || gwErr.StatusCode >= http.StatusInternalServerError
}
