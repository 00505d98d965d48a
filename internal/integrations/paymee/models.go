package paymee

// statuts de paiement côté passerelle
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// InitPaymentRequest demande de création d'un ordre de paiement.
// Amount est exprimé en plus petite unité monétaire (centimes).
type InitPaymentRequest struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"return_url,omitempty"`
}

// InitPaymentResponse ordre de paiement créé par la passerelle
type InitPaymentResponse struct {
	PayURL     string `json:"pay_url"`
	PaymentRef string `json:"payment_ref"`
}

// Payment état d'un paiement tel que connu de la passerelle. C'est la
// seule source faisant foi sur le statut et le montant : les paramètres
// renvoyés par la redirection client ne sont jamais crus.
type Payment struct {
	PaymentRef string `json:"payment_ref"`
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	Amount     int64  `json:"amount"` // plus petite unité monétaire
}

// ErrorResponse erreur renvoyée par la passerelle
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
