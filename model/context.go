package model

// ContextSchemaVersion is stamped on every persisted BotContext. A stored
// context carrying any other version is rejected at the store boundary
// instead of being silently interpreted.
const ContextSchemaVersion = 1

type RunState string

const RUN_STATE_ONGOING RunState = "onGoing"
const RUN_STATE_DONE RunState = "Done"

type InputType string

const INPUT_TYPE_TEXT InputType = "Text"
const INPUT_TYPE_AUDIO InputType = "Audio"

// TYPE_PAUSE in BotContext.Type marks a run suspended mid-conversation,
// waiting for the next user turn.
const TYPE_PAUSE = "pause"

const EVENT_USER_INPUT = "USER_INPUT"

// BotContext is the full conversation state threaded through a run and
// round-tripped through the conversation store between HTTP turns. It must
// stay fully serializable; no live handles.
type BotContext struct {
	SchemaVersion     int       `json:"schemaVersion"`
	UserId            string    `json:"userId"`
	UserQuestion      string    `json:"userQuestion"`
	Query             string    `json:"query"`
	QueryType         string    `json:"queryType"`
	Response          string    `json:"response"`
	Error             string    `json:"error"`
	UserAadhaarNumber string    `json:"userAadhaarNumber"`
	LastAadhaarDigits string    `json:"lastAadhaarDigits"`
	UserPhone         string    `json:"userPhone"`
	Otp               string    `json:"otp"`
	CurrentState      string    `json:"currentState"`
	Type              string    `json:"type"`
	InputType         InputType `json:"inputType"`
	InputLanguage     string    `json:"inputLanguage"`
	State             RunState  `json:"state"`
	IsOTPVerified     bool      `json:"isOTPVerified"`
}

func NewBotContext(userId string, initialState string, inputType InputType, inputLanguage string) *BotContext {
	return &BotContext{
		SchemaVersion: ContextSchemaVersion,
		UserId:        userId,
		CurrentState:  initialState,
		InputType:     inputType,
		InputLanguage: inputLanguage,
		State:         RUN_STATE_ONGOING,
	}
}

func (bc *BotContext) Clone() *BotContext {
	copy := *bc
	return &copy
}

// Identifier is the account identifier as typed across one or two turns:
// the number itself, plus the extra aadhaar digits collected when a mobile
// number is tagged with multiple records.
func (bc *BotContext) Identifier() string {
	return bc.UserAadhaarNumber + bc.LastAadhaarDigits
}

func (bc *BotContext) IsDone() bool {
	return bc.State == RUN_STATE_DONE
}

type Event struct {
	Name string
	Data any
}

// DataString returns the event payload when it is a plain string, which is
// what most guard sentinels compare against.
func (e Event) DataString() (string, bool) {
	s, ok := e.Data.(string)
	return s, ok
}
