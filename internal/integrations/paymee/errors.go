package paymee

import "errors"

var (
	// ErrUnauthorized renvoyé quand la passerelle rejette la clé API.
	// Erreur de configuration, non réessayable : inutile de rejouer
	// l'appel tant que la clé n'est pas corrigée.
	ErrUnauthorized = errors.New("paymee client: invalid API credentials")

	// ErrPaymentNotFound renvoyé quand la référence de paiement est
	// inconnue de la passerelle
	ErrPaymentNotFound = errors.New("paymee client: payment not found")

	// ErrGatewayUnavailable renvoyé sur échec réseau ou réponse 5xx.
	// Potentiellement réessayable par l'appelant.
	ErrGatewayUnavailable = errors.New("paymee client: gateway unavailable")

	// ErrInvalidResponse renvoyé quand la réponse de la passerelle est
	// inexploitable
	ErrInvalidResponse = errors.New("paymee client: invalid response")
)
