package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/AgrI-Mitra/bff/aitools"
	"github.com/AgrI-Mitra/bff/analytics"
	"github.com/AgrI-Mitra/bff/cache"
	"github.com/AgrI-Mitra/bff/flow"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/model"
	"github.com/AgrI-Mitra/bff/persistence"
	"github.com/AgrI-Mitra/bff/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MSG_TRANSLATE_FAILED = "Sorry, We are unable to translate given input, please try again"

var allDigitsPattern = regexp.MustCompile(`^\d+$`)

// PromptService is the request orchestrator: it resolves the conversation
// context, normalizes language and speech around the flow engine, drives
// one run, and persists whatever the run settles into.
type PromptService struct {
	flows      map[string]*flow.Flow
	store      persistence.ConversationStore
	ai         aitools.Client
	stateCache *cache.RunStateCache
}

func NewPromptService(flows map[string]*flow.Flow, store persistence.ConversationStore, ai aitools.Client, stateCache *cache.RunStateCache) *PromptService {
	return &PromptService{
		flows:      flows,
		store:      store,
		ai:         ai,
		stateCache: stateCache,
	}
}

// Prompt handles one user turn end to end. The returned error is reserved
// for turns that could not be processed at all (unknown flow, storage
// down); flow-level failures come back inside the PromptResult.
func (s *PromptService) Prompt(ctx context.Context, req *model.PromptRequest) (*model.PromptResult, error) {
	flowId := req.FlowId
	if flowId == "" {
		flowId = flow.DEFAULT_FLOW_ID
	}
	fl, ok := s.flows[flowId]
	if !ok {
		return nil, fmt.Errorf("unknown flow %s", flowId)
	}

	bc, err := s.loadContext(req.UserId, flowId)
	if err != nil {
		return nil, err
	}

	inputType := model.INPUT_TYPE_TEXT
	if req.Media != nil && req.Media.Category == model.MEDIA_CATEGORY_BASE64_AUDIO {
		inputType = model.INPUT_TYPE_AUDIO
	}
	language := s.detectLanguage(ctx, req, inputType)

	if bc == nil {
		bc = model.NewBotContext(req.UserId, fl.InitialState, inputType, language)
	}

	userInput, errResult := s.resolveUserInput(ctx, req, bc, inputType, language)
	if errResult != nil {
		return errResult, nil
	}

	// A voice question at the start of a flow is echoed back for
	// confirmation before the machine ever sees it.
	if inputType == model.INPUT_TYPE_AUDIO && bc.CurrentState == flow.STATE_GET_USER_QUESTION {
		return s.echoTurn(ctx, userInput, language), nil
	}

	// Spoken identifiers and OTPs are already transcribed in English, so
	// they bypass translation and go straight through digit normalization.
	english := userInput
	isNumber := false
	if inputType == model.INPUT_TYPE_AUDIO && contains(flow.NumericInputStates, bc.CurrentState) {
		mode := util.NUMERIC_MODE_BEN_ID
		if contains(flow.OTPStyleStates, bc.CurrentState) {
			mode = util.NUMERIC_MODE_NUMBER
		}
		english = util.WordsToNumber(userInput, mode)
		isNumber = true
	} else if language != aitools.LANG_ENGLISH && userInput != "resend OTP" {
		english, err = s.ai.Translate(ctx, language, aitools.LANG_ENGLISH, userInput)
		if err != nil {
			logger.Error("input translation failed",
				zap.String("userId", req.UserId), zap.Error(err))
			return &model.PromptResult{
				Error:       MSG_TRANSLATE_FAILED,
				MessageId:   uuid.New().String(),
				MessageType: model.MESSAGE_TYPE_INTERMEDIATE,
			}, nil
		}
	}

	analytics.RecordUserMessage(req.UserId, flowId, bc.CurrentState, english, string(inputType))

	bc.InputType = inputType
	bc.InputLanguage = language
	machine, err := flow.NewFlowMachine(fl, bc)
	if err != nil {
		return nil, err
	}
	outcome := machine.Start(ctx, model.Event{Name: model.EVENT_USER_INPUT, Data: english})

	result := s.buildResult(ctx, outcome, language, isNumber)

	if err := s.store.Save(req.UserId, flowId, outcome.Context, outcome.Context.State); err != nil {
		return nil, err
	}
	s.stateCache.Save(req.UserId, flowId, outcome.Context.State)
	analytics.RecordBotMessage(req.UserId, flowId, outcome.Context.CurrentState, result.Text, result.Error)
	return result, nil
}

// loadContext fetches the stored conversation, treating finished ones as
// absent so a new question starts a fresh conversation. The run-state
// cache skips the store read for conversations already known to be done.
func (s *PromptService) loadContext(userId string, flowId string) (*model.BotContext, error) {
	if state, found := s.stateCache.Get(userId, flowId); found && state == model.RUN_STATE_DONE {
		return nil, nil
	}
	bc, err := s.store.Load(userId, flowId)
	if err != nil {
		return nil, err
	}
	if bc != nil && bc.IsDone() {
		return nil, nil
	}
	return bc, nil
}

func (s *PromptService) detectLanguage(ctx context.Context, req *model.PromptRequest, inputType model.InputType) string {
	declared := req.InputLanguage
	if declared == "" {
		declared = aitools.LANG_ENGLISH
	}
	if inputType == model.INPUT_TYPE_AUDIO {
		return declared
	}
	if allDigitsPattern.MatchString(req.Text) {
		return aitools.LANG_ENGLISH
	}
	detected, err := s.ai.DetectLanguage(ctx, req.Text)
	if err != nil {
		logger.Warn("language detection failed, using declared language",
			zap.String("userId", req.UserId), zap.Error(err))
		return declared
	}
	if detected == aitools.LANG_UNKNOWN || detected == "" {
		return declared
	}
	return detected
}

// resolveUserInput produces the raw text of this turn, transcribing audio
// when needed. Numeric-input states force English transcription since
// identifiers and OTPs are spoken as digits.
func (s *PromptService) resolveUserInput(ctx context.Context, req *model.PromptRequest, bc *model.BotContext, inputType model.InputType, language string) (string, *model.PromptResult) {
	if inputType != model.INPUT_TYPE_AUDIO {
		return req.Text, nil
	}
	sttLanguage := language
	if contains(flow.NumericInputStates, bc.CurrentState) {
		sttLanguage = aitools.LANG_ENGLISH
	}
	text, err := s.ai.SpeechToText(ctx, req.Media.Text, sttLanguage)
	if err != nil {
		logger.Error("speech to text failed",
			zap.String("userId", req.UserId), zap.Error(err))
		return "", &model.PromptResult{
			Error:       flow.MSG_SOMETHING_WENT_WRONG,
			MessageId:   uuid.New().String(),
			MessageType: model.MESSAGE_TYPE_INTERMEDIATE,
		}
	}
	return text, nil
}

func (s *PromptService) echoTurn(ctx context.Context, userInput string, language string) *model.PromptResult {
	result := &model.PromptResult{
		Text:        userInput,
		MessageId:   uuid.New().String(),
		MessageType: model.MESSAGE_TYPE_INTERMEDIATE,
	}
	audio, err := s.ai.TextToSpeech(ctx, userInput, language)
	if err == nil {
		result.Audio = audio
	}
	return result
}

// buildResult translates the settled context back into the user's
// language and synthesizes the reply audio. Numeric prompts stay English;
// reading digits back in another language garbles them.
func (s *PromptService) buildResult(ctx context.Context, outcome flow.Outcome, language string, isNumber bool) *model.PromptResult {
	bc := outcome.Context
	result := &model.PromptResult{
		MessageId:    uuid.New().String(),
		CurrentState: bc.CurrentState,
		MessageType:  model.MESSAGE_TYPE_INTERMEDIATE,
	}
	if outcome.Status != flow.OUTCOME_PAUSED {
		result.MessageType = model.MESSAGE_TYPE_FINAL
	}
	if bc.Error != "" {
		result.Error = bc.Error
		return result
	}
	result.TextInEnglish = bc.Response
	result.Text = bc.Response
	if language != aitools.LANG_ENGLISH && !isNumber && bc.Response != "" {
		translated, err := s.ai.Translate(ctx, aitools.LANG_ENGLISH, language, bc.Response)
		if err != nil {
			logger.Error("response translation failed", zap.Error(err))
			result.Error = MSG_TRANSLATE_FAILED
			result.Text = ""
			result.TextInEnglish = ""
			return result
		}
		result.Text = translated
	}
	if result.Text != "" {
		ttsLanguage := language
		if isNumber {
			ttsLanguage = aitools.LANG_ENGLISH
		}
		audio, err := s.ai.TextToSpeech(ctx, result.Text, ttsLanguage)
		if err != nil {
			logger.Warn("text to speech failed", zap.Error(err))
		} else {
			result.Audio = audio
		}
	}
	return result
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
