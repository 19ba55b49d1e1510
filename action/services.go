package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/AgrI-Mitra/bff/aitools"
	"github.com/AgrI-Mitra/bff/kisan"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/model"
	"github.com/AgrI-Mitra/bff/util"
	"go.uber.org/zap"
)

// BotServices owns the collaborator clients behind the flow service
// namespace.
type BotServices struct {
	ai         aitools.Client
	portal     kisan.Client
	shapeOrder []util.IdentifierShape
}

func NewBotServices(ai aitools.Client, portal kisan.Client, shapeOrder []util.IdentifierShape) *BotServices {
	if len(shapeOrder) == 0 {
		shapeOrder = util.DefaultShapeOrder
	}
	return &BotServices{ai: ai, portal: portal, shapeOrder: shapeOrder}
}

// NewRegistry returns the service registry every flow variant resolves
// against.
func (s *BotServices) NewRegistry() *Registry {
	r := NewRegistry()
	r.Register("getInput", s.getInput)
	r.Register("classifyQuestion", s.classifyQuestion)
	r.Register("captureIdentifier", s.captureIdentifier)
	r.Register("captureLastDigits", s.captureLastDigits)
	r.Register("captureOTP", s.captureOTP)
	r.Register("capturePhoneNumber", s.capturePhoneNumber)
	r.Register("validateIdentifier", s.validateIdentifier)
	r.Register("validateOTP", s.validateOTP)
	r.Register("fetchAccountData", s.fetchAccountData)
	r.Register("validatePhoneNumber", s.validatePhoneNumber)
	r.Register("fetchDocument", s.fetchDocument)
	r.Register("composeAnswer", s.composeAnswer)
	r.Register("invalidQuestionReply", s.invalidQuestionReply)
	r.Register("noRecordsReply", s.noRecordsReply)
	r.Register("logError", s.logError)
	return r
}

func eventText(ev model.Event) string {
	s, _ := ev.DataString()
	return strings.TrimSpace(s)
}

// getInput starts a fresh question: it records the (already translated)
// user text and clears the previous turn's answer.
func (s *BotServices) getInput(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	text := eventText(ev)
	bc.Query = text
	bc.UserQuestion = text
	bc.Response = ""
	bc.Error = ""
	bc.QueryType = ""
	return text, nil
}

// classifyQuestion asks the intent classifier and collapses its label set
// into the classes the flows route on. Only one class can win.
func (s *BotServices) classifyQuestion(ctx context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	result, err := s.ai.ClassifyIntent(ctx, bc.UserId, bc.UserId, bc.Query)
	if err != nil {
		return nil, err
	}
	var class string
	switch result.QueryIntent {
	case "Invalid", "convo_starter", "convo_ender":
		class = "convo"
	case "Installment Not Received":
		class = "payment"
	case "SHC Download":
		class = "SHC PDF"
	default:
		class = "invalid"
	}
	logger.Debug("question classified",
		zap.String("userId", bc.UserId), zap.String("class", class))
	bc.QueryType = class
	switch class {
	case "convo":
		bc.Response = result.Response
	case "payment":
		if !bc.IsOTPVerified {
			bc.Response = MSG_ASK_IDENTIFIER
		}
	case "SHC PDF":
		bc.Response = MSG_ASK_PHONE
	}
	return map[string]any{"class": class, "response": result.Response}, nil
}

func (s *BotServices) captureIdentifier(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	text := strings.ToUpper(strings.ReplaceAll(eventText(ev), " ", ""))
	bc.Query = text
	bc.UserAadhaarNumber = text
	bc.LastAadhaarDigits = ""
	return text, nil
}

func (s *BotServices) captureLastDigits(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	text := strings.ReplaceAll(eventText(ev), " ", "")
	bc.Query = text
	bc.LastAadhaarDigits = text
	return text, nil
}

func (s *BotServices) captureOTP(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	text := eventText(ev)
	bc.Query = text
	if text != "resend OTP" {
		bc.Otp = strings.ReplaceAll(text, " ", "")
	}
	return text, nil
}

func (s *BotServices) capturePhoneNumber(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	text := strings.ReplaceAll(eventText(ev), " ", "")
	bc.Query = text
	bc.UserPhone = text
	return text, nil
}

// validateIdentifier resolves the identifier shape and asks the portal to
// issue an OTP. The portal's message string is the routed result; the
// response prompt for the next pause is chosen here, before the
// interpreter suspends.
func (s *BotServices) validateIdentifier(ctx context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	identifier := bc.Identifier()
	shape := util.ResolveIdentifierShape(identifier, s.shapeOrder)
	if shape == util.SHAPE_UNKNOWN {
		bc.Response = kisan.MSG_INVALID_IDENTIFIER
		return kisan.MSG_INVALID_IDENTIFIER, nil
	}
	message, err := s.portal.SendOTP(ctx, identifier, shape)
	if err != nil {
		logger.Error("otp issuance failed",
			zap.String("userId", bc.UserId), zap.Error(err))
		return nil, fmt.Errorf("otp issuance failed: %w", err)
	}
	switch message {
	case kisan.MSG_OTP_SENT:
		bc.Response = MSG_ASK_OTP
	case kisan.MSG_MULTIPLE_RECORDS:
		bc.Response = MSG_ASK_LAST_DIGITS
	case kisan.MSG_TRY_AGAIN:
		bc.Response = MSG_TRY_AGAIN
	case kisan.MSG_INVALID_IDENTIFIER:
		bc.Response = kisan.MSG_INVALID_IDENTIFIER
	}
	return message, nil
}

func (s *BotServices) validateOTP(ctx context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	identifier := bc.Identifier()
	shape := util.ResolveIdentifierShape(identifier, s.shapeOrder)
	if shape == util.SHAPE_UNKNOWN {
		return nil, fmt.Errorf("identifier lost between turns")
	}
	message, err := s.portal.VerifyOTP(ctx, identifier, bc.Otp, shape)
	if err != nil {
		logger.Error("otp verification failed",
			zap.String("userId", bc.UserId), zap.Error(err))
		return nil, fmt.Errorf("otp verification failed: %w", err)
	}
	if message == kisan.MSG_OTP_NOT_VERIFIED {
		bc.Response = MSG_INVALID_OTP
	} else {
		bc.IsOTPVerified = true
	}
	return message, nil
}

// fetchAccountData composes the final beneficiary answer: the detail
// block plus the portal error explanations relevant to the query type.
func (s *BotServices) fetchAccountData(ctx context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	identifier := bc.Identifier()
	shape := util.ResolveIdentifierShape(identifier, s.shapeOrder)
	if shape == util.SHAPE_UNKNOWN {
		return nil, fmt.Errorf("identifier lost between turns")
	}
	beneficiary, err := s.portal.BeneficiaryStatus(ctx, identifier, shape)
	if err != nil {
		logger.Error("beneficiary status fetch failed",
			zap.String("userId", bc.UserId), zap.Error(err))
		return nil, fmt.Errorf("beneficiary status fetch failed: %w", err)
	}
	issues := kisan.FilterPortalErrors(beneficiary, bc.QueryType)
	response := kisan.GreetingMessage(beneficiary) + strings.Join(issues, "\n")
	bc.Response = response
	return response, nil
}

func (s *BotServices) validatePhoneNumber(ctx context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	valid, err := s.portal.ValidatePhoneNumber(ctx, bc.UserPhone)
	if err != nil {
		return nil, fmt.Errorf("phone validation failed: %w", err)
	}
	if !valid {
		bc.Response = MSG_INVALID_PHONE
	}
	return valid, nil
}

func (s *BotServices) fetchDocument(ctx context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	url, err := s.portal.SoilHealthCard(ctx, bc.UserPhone)
	if err != nil {
		logger.Error("soil health card fetch failed",
			zap.String("userId", bc.UserId), zap.Error(err))
		return nil, fmt.Errorf("soil health card fetch failed: %w", err)
	}
	bc.Response = MSG_SHC_READY + url
	return url, nil
}

// composeAnswer turns the classifier result carried on the event into the
// final reply for question-answering flows.
func (s *BotServices) composeAnswer(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	if m, ok := ev.Data.(map[string]any); ok {
		if response, ok := m["response"].(string); ok && response != "" {
			bc.Response = response
			return response, nil
		}
	}
	bc.Response = MSG_INVALID_QUESTION
	return bc.Response, nil
}

func (s *BotServices) invalidQuestionReply(_ context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	bc.Response = MSG_INVALID_QUESTION
	return bc.Response, nil
}

func (s *BotServices) noRecordsReply(_ context.Context, bc *model.BotContext, _ model.Event) (any, error) {
	bc.Response = MSG_NO_RECORDS
	return bc.Response, nil
}

// logError settles a routed service failure: the raw error stays in the
// logs, the user gets the generic retry message instead of a blank reply.
func (s *BotServices) logError(_ context.Context, bc *model.BotContext, ev model.Event) (any, error) {
	logger.Error("flow routed to error state",
		zap.String("userId", bc.UserId),
		zap.String("state", bc.CurrentState),
		zap.Any("data", ev.Data))
	bc.Error = MSG_SOMETHING_WENT_WRONG
	bc.Response = ""
	return ev.Data, nil
}
