package kisan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	for input, want := range map[string]string{
		"RAM KUMAR":     "Ram Kumar",
		"ram kumar":     "Ram Kumar",
		"  ram  kumar ": "Ram Kumar",
		"राम कुमार":     "राम कुमार",
		"":              "",
	} {
		require.Equal(t, want, TitleCase(input), input)
	}
}

func TestFilterPortalErrors(t *testing.T) {
	b := &Beneficiary{
		BeneficiaryName:       "ram kumar",
		LatestInstallmentPaid: "14th",
		DateOfRegistration:    "01-02-2019",
	}

	b.StatusFlags = map[string]string{
		"Rsponce":                 "True",
		"Message":                 "ok",
		"BankAadharSeedingStatus": "eKYC Pending",
		"SomeOtherFlag":           "",
	}
	issues := FilterPortalErrors(b, "payment")
	require.Len(t, issues, 1)
	require.Contains(t, issues[0], "Ram Kumar, your eKYC is pending")

	// Flags scoped to other query types fall back to the summary entry.
	issues = FilterPortalErrors(b, "SHC PDF")
	require.Len(t, issues, 1)
	require.Contains(t, issues[0], "no issues were found")

	b.StatusFlags = nil
	issues = FilterPortalErrors(b, "payment")
	require.Len(t, issues, 1)
	require.Contains(t, issues[0], "14th")
	require.Contains(t, issues[0], "01-02-2019")
}
