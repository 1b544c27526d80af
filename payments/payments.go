/* payments.go
 * Contains the payment-intent provider interface and the stub provider used
 * when no real payment processor is configured
 */

package payments

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Intent is the client-facing result of creating a payment intent
type Intent struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"-"`
	Currency     string `json:"-"`
}

// Provider creates payment intents for contest entry fees
type Provider interface {
	Name() string
	CreateIntent(amountCents int64, currency string) (Intent, error)
}

// NewProvider selects a provider implementation by name
func NewProvider(name string) (Provider, error) {
	switch name {
	case "", "stub":
		return &Stub{}, nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", name)
	}
}

// Stub issues locally generated client secrets without contacting a
// processor. Intended for development and test environments.
type Stub struct{}

func (s *Stub) Name() string {
	return "stub"
}

// CreateIntent fabricates an intent in the processor's client-secret shape
// Preconditions: receives the amount in the currency's minor unit; must be positive
// Postconditions: returns an intent with a unique client secret, or an error for a non-positive amount
func (s *Stub) CreateIntent(amountCents int64, currency string) (Intent, error) {
	if amountCents <= 0 {
		return Intent{}, fmt.Errorf("amount must be positive, got %d", amountCents)
	}
	if currency == "" {
		currency = "usd"
	}

	id, err := randomHex(12)
	if err != nil {
		return Intent{}, err
	}
	secret, err := randomHex(16)
	if err != nil {
		return Intent{}, err
	}

	return Intent{
		ClientSecret: fmt.Sprintf("pi_%s_secret_%s", id, secret),
		Amount:       amountCents,
		Currency:     currency,
	}, nil
}

// randomHex returns byteLen random bytes in hex form
func randomHex(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
