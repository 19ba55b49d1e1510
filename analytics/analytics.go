package analytics

type TranscriptCollectorConfig struct {
	FileName      string
	CollectorType TranscriptCollectorType
}

type TranscriptCollectorType string

const LOG_FILE_TRANSCRIPT_COLLECTOR TranscriptCollectorType = "LOG_FILE_TRANSCRIPT_COLLECTOR"
const NOOP_TRANSCRIPT_COLLECTOR TranscriptCollectorType = "NOOP_TRANSCRIPT_COLLECTOR"

// TranscriptCollector records the turn-by-turn transcript of every
// conversation for later analysis. It sits outside the engine: the flow
// core never emits telemetry itself.
type TranscriptCollector interface {
	RecordUserMessage(userId string, flowId string, state string, text string, inputType string)
	RecordBotMessage(userId string, flowId string, state string, text string, errText string)
}

var transcriptCollector TranscriptCollector = noopCollector{}

func InitTranscriptCollector(config TranscriptCollectorConfig) error {
	switch config.CollectorType {
	case LOG_FILE_TRANSCRIPT_COLLECTOR:
		c, err := NewLogFileTranscriptCollector(config.FileName)
		if err != nil {
			return err
		}
		transcriptCollector = c
	}
	return nil
}

func RecordUserMessage(userId string, flowId string, state string, text string, inputType string) {
	transcriptCollector.RecordUserMessage(userId, flowId, state, text, inputType)
}

func RecordBotMessage(userId string, flowId string, state string, text string, errText string) {
	transcriptCollector.RecordBotMessage(userId, flowId, state, text, errText)
}

type noopCollector struct{}

func (noopCollector) RecordUserMessage(string, string, string, string, string) {}
func (noopCollector) RecordBotMessage(string, string, string, string, string)  {}
