package flow

import (
	"fmt"

	"github.com/AgrI-Mitra/bff/action"
	"github.com/AgrI-Mitra/bff/guard"
	"github.com/AgrI-Mitra/bff/model"
)

const DEFAULT_FLOW_ID = "3"

// State names shared by the flow variants. The orchestrator keys its
// numeric-input handling on these, so they are part of the contract, not
// just labels.
const STATE_GET_USER_QUESTION = "getUserQuestion"
const STATE_CLASSIFYING_QUESTION = "classifyingQuestion"
const STATE_ASKING_AADHAAR_NUMBER = "askingAadhaarNumber"
const STATE_VALIDATING_IDENTIFIER = "validatingIdentifier"
const STATE_ASK_LAST_AADHAAR_DIGITS = "askLastAaadhaarDigits"
const STATE_ASKING_OTP = "askingOTP"
const STATE_VALIDATING_OTP = "validatingOTP"
const STATE_FETCHING_USER_DATA = "fetchingUserData"
const STATE_ASKING_PHONE_NUMBER = "askingPhoneNumber"
const STATE_VALIDATING_PHONE_NUMBER = "validatingPhoneNumber"
const STATE_FETCHING_DOCUMENT = "fetchingDocument"
const STATE_ANSWERING_QUESTION = "answeringQuestion"
const STATE_INVALID_QUESTION = "invalidQuestion"
const STATE_NO_RECORDS_FOUND = "noRecordsFound"
const STATE_END_FLOW = "endFlow"
const STATE_FLOW_FAULT = "flowFault"

// NumericInputStates are the states whose audio input is normalized from
// spoken words into digits before the machine sees it.
var NumericInputStates = []string{
	STATE_ASKING_AADHAAR_NUMBER,
	STATE_ASKING_OTP,
	STATE_ASK_LAST_AADHAAR_DIGITS,
}

// OTPStyleStates take digits only; the remaining numeric states accept
// alphanumeric beneficiary ids.
var OTPStyleStates = []string{
	STATE_ASKING_OTP,
	STATE_ASK_LAST_AADHAAR_DIGITS,
}

// BotFlow1 answers questions directly from the classifier with no
// identity verification.
func BotFlow1() *model.FlowDefinition {
	return &model.FlowDefinition{
		Name:         "1",
		InitialState: STATE_GET_USER_QUESTION,
		States: map[string]model.StateDef{
			STATE_GET_USER_QUESTION: {
				OnEntry:       "getInput",
				Pause:         true,
				DefaultTarget: STATE_CLASSIFYING_QUESTION,
			},
			STATE_CLASSIFYING_QUESTION: {
				OnEntry: "classifyQuestion",
				Transitions: []model.TransitionDef{
					{Guard: "ifInvalidClassifier", Target: STATE_INVALID_QUESTION},
					{Guard: "ifConvoStarterOrEnder", Target: STATE_GET_USER_QUESTION},
				},
				DefaultTarget: STATE_ANSWERING_QUESTION,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_ANSWERING_QUESTION: {
				OnEntry:       "composeAnswer",
				DefaultTarget: STATE_END_FLOW,
			},
			STATE_INVALID_QUESTION: {
				OnEntry:       "invalidQuestionReply",
				DefaultTarget: STATE_GET_USER_QUESTION,
			},
			STATE_END_FLOW:   {Terminal: true},
			STATE_FLOW_FAULT: {OnEntry: "logError", Terminal: true},
		},
	}
}

// BotFlow2 fetches a soil health card after validating the user's phone
// number.
func BotFlow2() *model.FlowDefinition {
	return &model.FlowDefinition{
		Name:         "2",
		InitialState: STATE_GET_USER_QUESTION,
		States: map[string]model.StateDef{
			STATE_GET_USER_QUESTION: {
				OnEntry:       "getInput",
				Pause:         true,
				DefaultTarget: STATE_CLASSIFYING_QUESTION,
			},
			STATE_CLASSIFYING_QUESTION: {
				OnEntry: "classifyQuestion",
				Transitions: []model.TransitionDef{
					{Guard: "ifInvalidClassifier", Target: STATE_INVALID_QUESTION},
					{Guard: "ifConvoStarterOrEnder", Target: STATE_GET_USER_QUESTION},
					{Guard: "ifDocumentQuery", Target: STATE_ASKING_PHONE_NUMBER},
				},
				DefaultTarget: STATE_ASKING_PHONE_NUMBER,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_ASKING_PHONE_NUMBER: {
				OnEntry:       "capturePhoneNumber",
				Pause:         true,
				DefaultTarget: STATE_VALIDATING_PHONE_NUMBER,
			},
			STATE_VALIDATING_PHONE_NUMBER: {
				OnEntry: "validatePhoneNumber",
				Transitions: []model.TransitionDef{
					{Guard: "ifValidPhone", Target: STATE_FETCHING_DOCUMENT},
				},
				DefaultTarget: STATE_ASKING_PHONE_NUMBER,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_FETCHING_DOCUMENT: {
				OnEntry:       "fetchDocument",
				DefaultTarget: STATE_END_FLOW,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_INVALID_QUESTION: {
				OnEntry:       "invalidQuestionReply",
				DefaultTarget: STATE_GET_USER_QUESTION,
			},
			STATE_END_FLOW:   {Terminal: true},
			STATE_FLOW_FAULT: {OnEntry: "logError", Terminal: true},
		},
	}
}

// BotFlow3 is the full account-status flow: classify, collect an
// identifier, verify it with an OTP, then fetch the beneficiary record.
// This is the default variant.
func BotFlow3() *model.FlowDefinition {
	return &model.FlowDefinition{
		Name:         "3",
		InitialState: STATE_GET_USER_QUESTION,
		States: map[string]model.StateDef{
			STATE_GET_USER_QUESTION: {
				OnEntry: "getInput",
				Pause:   true,
				Transitions: []model.TransitionDef{
					{Guard: "resendOTP", Target: STATE_VALIDATING_IDENTIFIER},
				},
				DefaultTarget: STATE_CLASSIFYING_QUESTION,
			},
			STATE_CLASSIFYING_QUESTION: {
				OnEntry: "classifyQuestion",
				Transitions: []model.TransitionDef{
					{Guard: "ifInvalidClassifier", Target: STATE_INVALID_QUESTION},
					{Guard: "ifConvoStarterOrEnder", Target: STATE_GET_USER_QUESTION},
					{Guard: "ifOTPHasBeenVerified", Target: STATE_FETCHING_USER_DATA},
				},
				DefaultTarget: STATE_ASKING_AADHAAR_NUMBER,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_ASKING_AADHAAR_NUMBER: {
				OnEntry:       "captureIdentifier",
				Pause:         true,
				DefaultTarget: STATE_VALIDATING_IDENTIFIER,
			},
			STATE_VALIDATING_IDENTIFIER: {
				OnEntry: "validateIdentifier",
				Transitions: []model.TransitionDef{
					{Guard: "ifNotValidAadhaar", Target: STATE_ASKING_AADHAAR_NUMBER},
					{Guard: "ifNoRecordsFound", Target: STATE_NO_RECORDS_FOUND},
					{Guard: "ifMultipleAadhaar", Target: STATE_ASK_LAST_AADHAAR_DIGITS},
					{Guard: "ifOTPSend", Target: STATE_ASKING_OTP},
					{Guard: "ifTryAgain", Target: STATE_ASKING_AADHAAR_NUMBER},
				},
				DefaultTarget: STATE_FLOW_FAULT,
			},
			STATE_ASK_LAST_AADHAAR_DIGITS: {
				OnEntry:       "captureLastDigits",
				Pause:         true,
				DefaultTarget: STATE_VALIDATING_IDENTIFIER,
			},
			STATE_ASKING_OTP: {
				OnEntry: "captureOTP",
				Pause:   true,
				Transitions: []model.TransitionDef{
					{Guard: "resendOTP", Target: STATE_VALIDATING_IDENTIFIER},
				},
				DefaultTarget: STATE_VALIDATING_OTP,
			},
			STATE_VALIDATING_OTP: {
				OnEntry: "validateOTP",
				Transitions: []model.TransitionDef{
					{Guard: "ifInvalidOTP", Target: STATE_ASKING_OTP},
				},
				DefaultTarget: STATE_FETCHING_USER_DATA,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_FETCHING_USER_DATA: {
				OnEntry:       "fetchAccountData",
				DefaultTarget: STATE_END_FLOW,
				ErrorTarget:   STATE_FLOW_FAULT,
			},
			STATE_INVALID_QUESTION: {
				OnEntry:       "invalidQuestionReply",
				DefaultTarget: STATE_GET_USER_QUESTION,
			},
			STATE_NO_RECORDS_FOUND: {
				OnEntry:  "noRecordsReply",
				Terminal: true,
			},
			STATE_END_FLOW:   {Terminal: true},
			STATE_FLOW_FAULT: {OnEntry: "logError", Terminal: true},
		},
	}
}

// CompileAll builds every variant against the shared registries. The
// returned map is what the orchestrator selects from by flow id.
func CompileAll(guards *guard.Registry, services *action.Registry) (map[string]*Flow, error) {
	flows := make(map[string]*Flow)
	for _, def := range []*model.FlowDefinition{BotFlow1(), BotFlow2(), BotFlow3()} {
		fl, err := Convert(def, guards, services)
		if err != nil {
			return nil, fmt.Errorf("compiling flow %s: %w", def.Name, err)
		}
		flows[def.Name] = fl
	}
	return flows, nil
}
