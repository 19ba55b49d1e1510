package kisan

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// portalError maps one beneficiary status flag value to the user-facing
// explanation, scoped to the query types it is relevant for.
type portalError struct {
	Types []string
	Text  string
}

// portalErrorCatalog mirrors the portal's error taxonomy. Keys are the
// raw flag values found in the beneficiary status response.
var portalErrorCatalog = map[string]portalError{
	"Marked Dead": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, your record is marked as deceased in the portal. Please contact your district agriculture office for correction.",
	},
	"Income Tax Payee": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, your installment is on hold because you are registered as an income tax payee.",
	},
	"Land Seeding, KYS": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, your land seeding is pending. Please complete land verification at your local revenue office.",
	},
	"Aadhaar Not Authenticated": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, your FTO was not processed because your aadhaar is not authenticated. Please complete eKYC.",
	},
	"NPCI Seeding Pending": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, your bank account is not yet seeded with NPCI. Please contact your bank branch.",
	},
	"eKYC Pending": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, your eKYC is pending. Please complete it through the PM-Kisan portal or your nearest CSC.",
	},
	"No Errors": {
		Types: []string{"payment"},
		Text:  "{{farmer_name}}, no issues were found with your record. Your latest installment paid is {{latest_installment_paid}} and your registration date is {{reg_date}}.",
	},
}

// FilterPortalErrors picks the explanations relevant to this query type
// out of the raw status flags, substituting the farmer's details. When no
// flag matches, the "No Errors" summary is returned.
func FilterPortalErrors(b *Beneficiary, queryType string) []string {
	var out []string
	for key, value := range b.StatusFlags {
		if key == "Rsponce" || key == "Message" || value == "" {
			continue
		}
		entry, ok := portalErrorCatalog[value]
		if !ok {
			continue
		}
		if !containsType(entry.Types, queryType) {
			continue
		}
		out = append(out, substitute(entry.Text, b))
	}
	if len(out) == 0 {
		out = append(out, substitute(portalErrorCatalog["No Errors"].Text, b))
	}
	return out
}

func containsType(types []string, queryType string) bool {
	for _, t := range types {
		if t == queryType {
			return true
		}
	}
	return false
}

func substitute(text string, b *Beneficiary) string {
	text = strings.ReplaceAll(text, "{{farmer_name}}", TitleCase(b.BeneficiaryName))
	text = strings.ReplaceAll(text, "{{latest_installment_paid}}", b.LatestInstallmentPaid)
	text = strings.ReplaceAll(text, "{{reg_date}}", b.DateOfRegistration)
	return text
}

// GreetingMessage is the beneficiary detail block prepended to every
// account status answer.
func GreetingMessage(b *Beneficiary) string {
	var sb strings.Builder
	sb.WriteString("Beneficiary Name: " + TitleCase(b.BeneficiaryName) + "\n")
	sb.WriteString("Father's Name: " + TitleCase(b.FatherName) + "\n")
	sb.WriteString("Date of Birth: " + b.DOB + "\n")
	sb.WriteString("Address: " + b.Address + "\n")
	sb.WriteString("Date of Registration: " + b.DateOfRegistration + "\n")
	sb.WriteString("Latest Installment Paid: " + b.LatestInstallmentPaid + "\n")
	sb.WriteString("Registration No: " + b.RegNo + "\n")
	sb.WriteString("State: " + TitleCase(b.StateName) + "\n")
	sb.WriteString("District: " + TitleCase(b.DistrictName) + "\n")
	sb.WriteString("Sub District: " + TitleCase(b.SubDistrictName) + "\n")
	sb.WriteString("Village: " + TitleCase(b.VillageName) + "\n")
	sb.WriteString("eKYC Status: " + b.EKYCStatus + "\n")
	return sb.String()
}

// TitleCase normalizes the all-caps names the portal returns. Rune-aware:
// scripts without case, like Devanagari, pass through unchanged.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(strings.ToLower(s)), " "))
}
