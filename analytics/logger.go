package analytics

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogFileTranscriptCollector struct {
	fileName string
	logger   *zap.Logger
}

func NewLogFileTranscriptCollector(fileName string) (*LogFileTranscriptCollector, error) {
	enccoderConfig := zap.NewProductionEncoderConfig()
	enccoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	enccoderConfig.StacktraceKey = "" // to hide stacktrace info
	fileEncoder := zapcore.NewJSONEncoder(enccoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(logFile)
	defaultLogLevel := zapcore.InfoLevel
	core := zapcore.NewTee(zapcore.NewCore(fileEncoder, writer, defaultLogLevel))
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &LogFileTranscriptCollector{
		fileName: fileName,
		logger:   logger,
	}, nil
}

func (lc *LogFileTranscriptCollector) RecordUserMessage(userId string, flowId string, state string, text string, inputType string) {
	lc.logger.Info("user", zap.String("userId", userId), zap.String("flowId", flowId), zap.String("state", state), zap.String("text", text), zap.String("inputType", inputType))
}

func (lc *LogFileTranscriptCollector) RecordBotMessage(userId string, flowId string, state string, text string, errText string) {
	lc.logger.Info("bot", zap.String("userId", userId), zap.String("flowId", flowId), zap.String("state", state), zap.String("text", text), zap.String("error", errText))
}
