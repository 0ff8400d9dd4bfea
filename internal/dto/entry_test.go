package dto

import (
	"testing"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEntryInput_KeyAliases(t *testing.T) {
	bodies := []string{
		`{"journalId": "j1", "description": "d", "lines": [{"accountId": "1000", "description": "x", "debit": "5"}]}`,
		`{"journal": "j1", "description": "d", "lines": [{"account": "1000", "description": "x", "debit": 5}]}`,
		`{"journal_id": "j1", "description": "d", "lines": [{"account_id": "1000", "description": "x", "debit": "5", "credit": null}]}`,
		`{"journalID": "j1", "description": "d", "lines": [{"accountID": "1000", "description": "x", "debit": 5.0}]}`,
	}
	for _, body := range bodies {
		input, err := DecodeEntryInput([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, domain.RefFromString("j1"), input.Journal, body)
		require.Len(t, input.Lines, 1, body)
		assert.Equal(t, domain.RefFromString("1000"), input.Lines[0].Account, body)
		assert.Equal(t, "5", input.Lines[0].Debit.Value.String(), body)
		assert.True(t, input.Lines[0].Credit.Value.IsZero(), body)
	}
}

func TestDecodeEntryInput_EmbeddedObjects(t *testing.T) {
	input, err := DecodeEntryInput([]byte(`{"journal": {"_id": "j1", "code": "GJ"},
		"lines": [{"account": {"code": "1000", "name": "Cash"}, "debit": "oops"}]}`))
	require.NoError(t, err)

	assert.Equal(t, domain.RefFromObject("j1", "GJ", ""), input.Journal)
	assert.Equal(t, domain.RefFromObject("", "1000", "Cash"), input.Lines[0].Account)
	assert.True(t, input.Lines[0].Debit.Invalid, "bad amounts are left for the validator to report")
}

func TestDecodeEntryInput_MissingPartsAreEmpty(t *testing.T) {
	input, err := DecodeEntryInput([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, input.Journal.IsEmpty())
	assert.Empty(t, input.Lines)
}

func TestDecodeEntryInput_Rejects(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`[]`,
		`{"lines": {"account": "1000"}}`,
		`{"lines": ["1000"]}`,
	} {
		_, err := DecodeEntryInput([]byte(body))
		assert.Error(t, err, body)
	}
}
