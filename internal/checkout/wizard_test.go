package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4242", FormatCardNumber("4242"))
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242424242424242"))
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242-4242-4242-4242-9999"))
	assert.Equal(t, "4242 42", FormatCardNumber("4242 42x"))
	assert.Equal(t, "", FormatCardNumber("abc"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "1", FormatExpiry("1"))
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "12/2", FormatExpiry("122"))
	assert.Equal(t, "12/25", FormatExpiry("12/25"))
	assert.Equal(t, "12/25", FormatExpiry("122599"))
}

func TestWizardStepGating(t *testing.T) {
	w := NewWizard()
	require.Equal(t, StepContact, w.Step)

	// Incomplete contact details hold the wizard at step 1.
	problems := w.Next()
	require.NotNil(t, problems)
	assert.Contains(t, problems, "firstName")
	assert.Contains(t, problems, "lastName")
	assert.Contains(t, problems, "email")
	assert.Equal(t, StepContact, w.Step)

	require.NoError(t, w.SetField("firstName", "Dana"))
	require.NoError(t, w.SetField("lastName", "Cruz"))
	require.NoError(t, w.SetField("email", "not-an-email"))
	problems = w.Next()
	require.NotNil(t, problems)
	assert.Contains(t, problems, "email")
	assert.Equal(t, StepContact, w.Step)

	require.NoError(t, w.SetField("email", "dana@example.com"))
	require.Nil(t, w.Next())
	assert.Equal(t, StepShipping, w.Step)

	problems = w.Next()
	require.NotNil(t, problems)
	assert.Contains(t, problems, "address")
	assert.Contains(t, problems, "zipCode")

	require.NoError(t, w.SetField("address", "1 Main St"))
	require.NoError(t, w.SetField("city", "Springfield"))
	require.NoError(t, w.SetField("zipCode", "12345"))
	require.NoError(t, w.SetField("country", "USA"))
	require.Nil(t, w.Next())
	assert.Equal(t, StepPayment, w.Step)

	// Payment is the final step; Next never advances past it.
	require.NoError(t, w.SetField("cardNumber", "4242424242424242"))
	require.NoError(t, w.SetField("cardExpiry", "1225"))
	require.NoError(t, w.SetField("cardCVC", "123"))
	require.Nil(t, w.Next())
	assert.Equal(t, StepPayment, w.Step)
}

func TestWizardBackStopsAtFirstStep(t *testing.T) {
	w := NewWizard()
	w.Back()
	assert.Equal(t, StepContact, w.Step)

	w.Step = StepPayment
	w.Back()
	assert.Equal(t, StepShipping, w.Step)
	w.Back()
	w.Back()
	assert.Equal(t, StepContact, w.Step)
}

func TestWizardSetFieldFormatsCardInputs(t *testing.T) {
	w := NewWizard()
	require.NoError(t, w.SetField("cardNumber", "4111111111111111"))
	assert.Equal(t, "4111 1111 1111 1111", w.Form.CardNumber)
	require.NoError(t, w.SetField("cardExpiry", "0827"))
	assert.Equal(t, "08/27", w.Form.CardExpiry)
	require.NoError(t, w.SetField("cardCVC", "12ab34"))
	assert.Equal(t, "1234", w.Form.CardCVC)

	err := w.SetField("favoriteColor", "blue")
	require.Error(t, err)
}

func TestWizardStoreIsolatesSessions(t *testing.T) {
	store := NewWizardStore(0)
	a := store.Get("a")
	a.Step = StepPayment

	assert.Equal(t, StepContact, store.Get("b").Step)
	assert.Equal(t, StepPayment, store.Get("a").Step)

	store.Drop("a")
	assert.Equal(t, StepContact, store.Get("a").Step)
}
