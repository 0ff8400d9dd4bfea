package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Reference
	}{
		{"bare string", `" 1000 "`, Reference{Kind: RefValue, Value: "1000"}},
		{"number", `1000`, Reference{Kind: RefValue, Value: "1000"}},
		{"null", `null`, Reference{}},
		{"blank", `"  "`, Reference{}},
		{"object with id", `{"id": "a1", "code": "1000", "name": "Cash"}`, Reference{Kind: RefObject, ID: "a1", Code: "1000", Name: "Cash"}},
		{"object with _id", `{"_id": "a1"}`, Reference{Kind: RefObject, ID: "a1"}},
		{"empty object", `{}`, Reference{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Reference
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var r Reference
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &r))
	assert.Error(t, json.Unmarshal([]byte(`true`), &r))
}

func TestReference_RawPrefersID(t *testing.T) {
	assert.Equal(t, "a1", RefFromObject("a1", "1000", "Cash").Raw())
	assert.Equal(t, "Cash", RefFromObject("", "", "Cash").Raw())
	assert.Equal(t, "GJ", RefFromString("GJ").Raw())
	assert.Empty(t, Reference{}.Raw())
	assert.True(t, Reference{}.IsEmpty())
}

func TestReference_MarshalRoundTripKeepsShape(t *testing.T) {
	b, err := json.Marshal(RefFromString("1000"))
	require.NoError(t, err)
	assert.JSONEq(t, `"1000"`, string(b))

	b, err = json.Marshal(RefFromObject("a1", "", "Cash"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "a1", "name": "Cash"}`, string(b))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		invalid bool
	}{
		{"", "0", false},
		{"null", "0", false},
		{" 12.50 ", "12.5", false},
		{"1,234.56", "1234.56", false},
		{"-3", "-3", false},
		{"ten", "0", true},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		assert.Equal(t, tt.want, got.Value.String(), tt.in)
		assert.Equal(t, tt.invalid, got.Invalid, tt.in)
	}
	assert.Equal(t, "ten", ParseAmount("ten").String())
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var line LineInput
	require.NoError(t, json.Unmarshal([]byte(`{"account": "1000", "debit": "15.25", "credit": null}`), &line))
	assert.Equal(t, "15.25", line.Debit.Value.String())
	assert.True(t, line.Credit.Value.IsZero())
	assert.False(t, line.Credit.Invalid)

	require.NoError(t, json.Unmarshal([]byte(`{"debit": {"v": 1}}`), &line))
	assert.True(t, line.Debit.Invalid)
}

func TestIsJournalID(t *testing.T) {
	assert.True(t, IsJournalID("64b7f0c2a1b2c3d4e5f60718"))
	assert.True(t, IsJournalID("64B7F0C2A1B2C3D4E5F60718"))
	assert.False(t, IsJournalID("64b7f0c2a1b2c3d4e5f6071"))
	assert.False(t, IsJournalID("zzb7f0c2a1b2c3d4e5f60718"))
	assert.False(t, IsJournalID("GJ"))
}

func TestJournalFilter_Matches(t *testing.T) {
	j := Journal{Code: "GJ", JournalType: GeneralJournal}
	assert.True(t, JournalFilter{}.Matches(j))
	assert.True(t, JournalFilter{JournalType: "general"}.Matches(j))
	assert.False(t, JournalFilter{JournalType: SalesJournal}.Matches(j))
	assert.False(t, JournalFilter{Code: "gj"}.Matches(j))
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	lines := []JournalLine{
		{Debit: ParseAmount("10").Value, Credit: ParseAmount("0").Value},
		{Debit: ParseAmount("0").Value, Credit: ParseAmount("10.00").Value},
	}
	debit, credit := SumLines(lines)
	assert.True(t, JournalEntry{TotalDebit: debit, TotalCredit: credit}.IsBalanced())
	assert.False(t, JournalEntry{TotalDebit: debit, TotalCredit: debit.Add(credit)}.IsBalanced())
	assert.False(t, JournalEntry{}.IsBalanced())
}

func TestAccount_Label(t *testing.T) {
	assert.Equal(t, "Cash (1000)", Account{Code: "1000", Name: "Cash"}.Label())
}
