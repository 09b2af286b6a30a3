package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billsplit/internal/domain"
	"billsplit/internal/parser"
	"billsplit/internal/port"
	"billsplit/mocks"
)

func fallbackInput() port.ParseInput {
	return port.ParseInput{Text: "raw bill text", OwnerTable: "555-000-0001: Alice"}
}

func parsedOutput() *port.ParseOutput {
	return &port.ParseOutput{
		Bill:      &domain.Bill{Month: "11", Year: "2024"},
		ModelUsed: "secondary-model",
	}
}

func TestFallbackParser_PrimarySucceeds(t *testing.T) {
	primary := new(mocks.MockBillParser)
	secondary := new(mocks.MockBillParser)
	primary.On("Parse", mock.Anything, mock.Anything).Return(parsedOutput(), nil)

	fp := parser.NewFallbackParser(
		[]port.BillParser{primary, secondary}, []string{"openai", "claude"})

	out, err := fp.Parse(context.Background(), fallbackInput())

	require.NoError(t, err)
	assert.NotNil(t, out.Bill)
	secondary.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestFallbackParser_SecondaryAfterFailure(t *testing.T) {
	primary := new(mocks.MockBillParser)
	secondary := new(mocks.MockBillParser)
	primary.On("Parse", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	secondary.On("Parse", mock.Anything, mock.Anything).Return(parsedOutput(), nil)

	fp := parser.NewFallbackParser(
		[]port.BillParser{primary, secondary}, []string{"openai", "claude"})

	out, err := fp.Parse(context.Background(), fallbackInput())

	require.NoError(t, err)
	assert.Equal(t, "secondary-model", out.ModelUsed)
}

func TestFallbackParser_MalformedBillStopsChain(t *testing.T) {
	// A schema-invalid payload is a contract violation, not a provider
	// outage; it must surface rather than be retried elsewhere.
	primary := new(mocks.MockBillParser)
	secondary := new(mocks.MockBillParser)
	primary.On("Parse", mock.Anything, mock.Anything).
		Return(nil, &parser.MalformedBillError{Err: errors.New("bad json"), Raw: "oops"})

	fp := parser.NewFallbackParser(
		[]port.BillParser{primary, secondary}, []string{"openai", "claude"})

	_, err := fp.Parse(context.Background(), fallbackInput())

	var malformed *parser.MalformedBillError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "oops", malformed.Raw)
	secondary.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestFallbackParser_RateLimitOpensCircuit(t *testing.T) {
	primary := new(mocks.MockBillParser)
	secondary := new(mocks.MockBillParser)
	primary.On("Parse", mock.Anything, mock.Anything).
		Return(nil, parser.NewRateLimitError("openai", errors.New("429"), 60)).Once()
	secondary.On("Parse", mock.Anything, mock.Anything).Return(parsedOutput(), nil).Twice()

	fp := parser.NewFallbackParser(
		[]port.BillParser{primary, secondary}, []string{"openai", "claude"})

	_, err := fp.Parse(context.Background(), fallbackInput())
	require.NoError(t, err)

	// Second run inside the backoff window skips the primary entirely.
	_, err = fp.Parse(context.Background(), fallbackInput())
	require.NoError(t, err)
	primary.AssertNumberOfCalls(t, "Parse", 1)
}

func TestFallbackParser_AllFail(t *testing.T) {
	primary := new(mocks.MockBillParser)
	primary.On("Parse", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	fp := parser.NewFallbackParser([]port.BillParser{primary}, []string{"openai"})

	_, err := fp.Parse(context.Background(), fallbackInput())
	assert.ErrorContains(t, err, "all parsers failed")
}
