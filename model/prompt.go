package model

// PromptRequest is one user turn as received over HTTP.
type PromptRequest struct {
	Type           InputType `json:"type"`
	Text           string    `json:"text"`
	UserId         string    `json:"userId"`
	FlowId         string    `json:"flowId"`
	InputLanguage  string    `json:"inputLanguage,omitempty"`
	Media          *Media    `json:"media,omitempty"`
	MessageId      string    `json:"messageId,omitempty"`
	ConversationId string    `json:"conversationId,omitempty"`
}

type Media struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

const MEDIA_CATEGORY_BASE64_AUDIO = "base64audio"

// PromptResult is what the orchestrator surfaces back to the HTTP layer.
type PromptResult struct {
	Text          string `json:"text"`
	TextInEnglish string `json:"textInEnglish"`
	Error         string `json:"error,omitempty"`
	Audio         string `json:"audio,omitempty"`
	MessageId     string `json:"messageId"`
	MessageType   string `json:"messageType"`
	CurrentState  string `json:"currentState,omitempty"`
}

const MESSAGE_TYPE_INTERMEDIATE = "intermediate_response"
const MESSAGE_TYPE_FINAL = "final_response"
