// Package progress derives the onboarding wizard state of a client file from
// its persisted fields. The derivation is the source of truth: no stored
// completion flag is ever trusted, and deriving twice from the same snapshot
// yields identical results.
package progress

import (
	"strings"

	"astrafin-backoffice/internal/adapters/persistence/models"
)

// Step is one of the 12 ordered sections of the onboarding questionnaire
type Step string

const (
	StepBasicInfo             Step = "BASIC_INFO"
	StepIdentity              Step = "IDENTITY"
	StepBirthInfo             Step = "BIRTH_INFO"
	StepAddress               Step = "ADDRESS"
	StepContact               Step = "CONTACT"
	StepFamilySituation       Step = "FAMILY_SITUATION"
	StepProfessionalSituation Step = "PROFESSIONAL_SITUATION"
	StepFinancialSituation    Step = "FINANCIAL_SITUATION"
	StepBanking               Step = "BANKING"
	StepTaxStatus             Step = "TAX_STATUS"
	StepFundOrigin            Step = "FUND_ORIGIN"
	StepSummary               Step = "SUMMARY"
)

// Order is the fixed wizard step order
var Order = []Step{
	StepBasicInfo,
	StepIdentity,
	StepBirthInfo,
	StepAddress,
	StepContact,
	StepFamilySituation,
	StepProfessionalSituation,
	StepFinancialSituation,
	StepBanking,
	StepTaxStatus,
	StepFundOrigin,
	StepSummary,
}

// StepStatus classifies one wizard step
type StepStatus string

const (
	// NotStarted means the step is reachable but none of its fields are filled
	NotStarted StepStatus = "NOT_STARTED"
	// Incomplete is reserved for a form opened and partially filled but not yet
	// persisted. The derivation never produces it: it only sees persisted state.
	Incomplete StepStatus = "INCOMPLETE"
	// Complete means every required field of the step is present
	Complete StepStatus = "COMPLETE"
	// Locked means an earlier step must be completed first
	Locked StepStatus = "LOCKED"
)

// Progress is the derived wizard state of one client file. It is ephemeral:
// recomputed on every read, never persisted as authoritative.
type Progress struct {
	CurrentStep Step                `json:"current_step"`
	Steps       map[Step]StepStatus `json:"steps"`
}

// Derive recomputes the step statuses and current step of a client file from
// its field values alone
func Derive(f *models.ClientFile) *Progress {
	steps := make(map[Step]StepStatus, len(Order))
	for _, step := range Order {
		steps[step] = Locked
	}
	steps[StepBasicInfo] = NotStarted

	// Forward pass: completing a step unlocks its successor
	for i, step := range Order {
		if !stepComplete(f, step) {
			continue
		}
		steps[step] = Complete
		if i+1 < len(Order) && steps[Order[i+1]] == Locked {
			steps[Order[i+1]] = NotStarted
		}
	}

	// Repair pass: data filled out of order (imports) must not leave a locked
	// step behind a completed one
	lastComplete := -1
	for i, step := range Order {
		if steps[step] == Complete {
			lastComplete = i
		}
	}
	for i := 0; i <= lastComplete; i++ {
		if steps[Order[i]] == Locked {
			steps[Order[i]] = NotStarted
		}
	}

	current := StepSummary
	if steps[StepFundOrigin] != Complete {
		for _, step := range Order {
			if steps[step] != Complete {
				current = step
				break
			}
		}
	}

	return &Progress{CurrentStep: current, Steps: steps}
}

// stepComplete checks the completeness predicate of one step against the
// client file's persisted fields
func stepComplete(f *models.ClientFile, step Step) bool {
	switch step {
	case StepBasicInfo:
		return present(f.Reference, f.ClientCode, f.Reason, f.ClientType)
	case StepIdentity:
		return present(f.LastName, f.FirstName)
	case StepBirthInfo:
		return f.BirthDate != nil && present(f.BirthPlace, f.Nationality)
	case StepAddress:
		return present(f.AddressLine, f.City, f.Country)
	case StepContact:
		return present(f.Email, f.Phone)
	case StepFamilySituation:
		return present(f.MaritalStatus)
	case StepProfessionalSituation:
		return present(f.Profession, f.Employer)
	case StepFinancialSituation:
		return f.AnnualIncome != nil
	case StepBanking:
		return present(f.BankName, f.IBAN)
	case StepTaxStatus:
		return present(f.TaxCountry, f.TaxID)
	case StepFundOrigin:
		return present(f.FundSources)
	}
	// SUMMARY has no completeness predicate; it is a navigation target only
	return false
}

// present checks that every value is non-empty after trimming
func present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
