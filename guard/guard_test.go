package guard

import (
	"testing"

	"github.com/AgrI-Mitra/bff/kisan"
	"github.com/AgrI-Mitra/bff/model"
	"github.com/stretchr/testify/require"
)

func TestGuards(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T, r *Registry){
		"portal sentinels":          testPortalSentinels,
		"no records pattern":        testNoRecordsPattern,
		"classifier guards":         testClassifierGuards,
		"context guards":            testContextGuards,
		"panic loses the vote":      testPanicLosesVote,
		"field guard":               testFieldGuard,
		"script guard":              testScriptGuard,
		"unknown guard not resolve": testUnknownGuard,
	} {
		t.Run(scenario, func(t *testing.T) {
			fn(t, NewRegistry())
		})
	}
}

func evalNamed(t *testing.T, r *Registry, name string, bc *model.BotContext, ev model.Event) bool {
	fn, err := r.Resolve(name)
	require.NoError(t, err)
	return Evaluate(name, fn, bc, ev)
}

func testPortalSentinels(t *testing.T, r *Registry) {
	bc := &model.BotContext{}
	for guardName, sentinel := range map[string]string{
		"ifOTPSend":         kisan.MSG_OTP_SENT,
		"ifTryAgain":        kisan.MSG_TRY_AGAIN,
		"ifNotValidAadhaar": kisan.MSG_INVALID_IDENTIFIER,
		"ifInvalidOTP":      kisan.MSG_OTP_NOT_VERIFIED,
		"ifMultipleAadhaar": kisan.MSG_MULTIPLE_RECORDS,
	} {
		require.True(t, evalNamed(t, r, guardName, bc, model.Event{Data: sentinel}), guardName)
		require.False(t, evalNamed(t, r, guardName, bc, model.Event{Data: "some other text"}), guardName)
		require.False(t, evalNamed(t, r, guardName, bc, model.Event{Data: 42}), guardName)
	}
}

func testNoRecordsPattern(t *testing.T, r *Registry) {
	bc := &model.BotContext{}
	matched := evalNamed(t, r, "ifNoRecordsFound", bc,
		model.Event{Data: kisan.NoRecordFoundMessage("123456789012")})
	require.True(t, matched)

	require.False(t, evalNamed(t, r, "ifNoRecordsFound", bc, model.Event{Data: "No Record"}))
}

func testClassifierGuards(t *testing.T, r *Registry) {
	bc := &model.BotContext{}
	result := map[string]any{"class": "invalid", "response": ""}
	require.True(t, evalNamed(t, r, "ifInvalidClassifier", bc, model.Event{Data: result}))
	require.False(t, evalNamed(t, r, "ifConvoStarterOrEnder", bc, model.Event{Data: result}))

	result["class"] = "convo"
	require.True(t, evalNamed(t, r, "ifConvoStarterOrEnder", bc, model.Event{Data: result}))

	result["class"] = "SHC PDF"
	require.True(t, evalNamed(t, r, "ifDocumentQuery", bc, model.Event{Data: result}))
}

func testContextGuards(t *testing.T, r *Registry) {
	bc := &model.BotContext{Query: "resend OTP"}
	require.True(t, evalNamed(t, r, "resendOTP", bc, model.Event{}))
	bc.Query = "1234"
	require.False(t, evalNamed(t, r, "resendOTP", bc, model.Event{}))

	bc.IsOTPVerified = true
	require.True(t, evalNamed(t, r, "ifOTPHasBeenVerified", bc, model.Event{}))

	bc.InputType = model.INPUT_TYPE_AUDIO
	require.True(t, evalNamed(t, r, "ifAudio", bc, model.Event{}))
	require.False(t, evalNamed(t, r, "ifText", bc, model.Event{}))
}

func testPanicLosesVote(t *testing.T, r *Registry) {
	r.Register("explodes", func(_ *model.BotContext, _ model.Event) bool {
		panic("guard bug")
	})
	require.False(t, evalNamed(t, r, "explodes", &model.BotContext{}, model.Event{}))
}

func testFieldGuard(t *testing.T, r *Registry) {
	bc := &model.BotContext{}
	ev := model.Event{Data: map[string]any{"class": "payment"}}
	require.True(t, evalNamed(t, r, "field:$.class=payment", bc, ev))
	require.False(t, evalNamed(t, r, "field:$.class=convo", bc, ev))
	require.False(t, evalNamed(t, r, "field:$.missing=payment", bc, ev))

	_, err := r.Resolve("field:no-equals")
	require.Error(t, err)
}

func testScriptGuard(t *testing.T, r *Registry) {
	bc := &model.BotContext{IsOTPVerified: true}
	ev := model.Event{Name: "classifyQuestion", Data: "yes"}
	require.True(t, evalNamed(t, r, "expr:event.data == 'yes'", bc, ev))
	require.True(t, evalNamed(t, r, "expr:context.isOTPVerified", bc, ev))
	require.False(t, evalNamed(t, r, "expr:event.data == 'no'", bc, ev))

	_, err := r.Resolve("expr:not ((valid")
	require.Error(t, err)
}

func testUnknownGuard(t *testing.T, r *Registry) {
	_, err := r.Resolve("nobody")
	require.Error(t, err)
}
