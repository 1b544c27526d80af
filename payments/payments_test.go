/* payments_test.go
 * Contains unit tests for payments.go
 */

package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_DefaultsToStub(t *testing.T) {
	p, err := NewProvider("")
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Name())
}

func TestNewProvider_Unknown(t *testing.T) {
	p, err := NewProvider("braintree")
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestStubCreateIntent_SecretShape(t *testing.T) {
	p := &Stub{}

	intent, err := p.CreateIntent(2500, "usd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.ClientSecret, "pi_"))
	assert.Contains(t, intent.ClientSecret, "_secret_")
	assert.EqualValues(t, 2500, intent.Amount)
	assert.Equal(t, "usd", intent.Currency)
}

func TestStubCreateIntent_UniqueSecrets(t *testing.T) {
	p := &Stub{}

	first, err := p.CreateIntent(100, "usd")
	require.NoError(t, err)
	second, err := p.CreateIntent(100, "usd")
	require.NoError(t, err)

	assert.NotEqual(t, first.ClientSecret, second.ClientSecret)
}

func TestStubCreateIntent_RejectsNonPositive(t *testing.T) {
	p := &Stub{}

	for _, amount := range []int64{0, -500} {
		_, err := p.CreateIntent(amount, "usd")
		assert.Error(t, err)
	}
}

func TestStubCreateIntent_DefaultCurrency(t *testing.T) {
	p := &Stub{}

	intent, err := p.CreateIntent(100, "")
	require.NoError(t, err)
	assert.Equal(t, "usd", intent.Currency)
}
