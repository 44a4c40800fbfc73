// 日志配置
package config

import (
    "fmt"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "gopkg.in/natefinch/lumberjack.v2"
    "os"
    "time"
)

var Logger *zap.SugaredLogger

// InitLogger 初始化日志，生产环境下控制台只输出Info及以上
func InitLogger(environment string) error {
    encoderConfig := zap.NewProductionEncoderConfig()
    encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

    consoleLevel := zap.DebugLevel
    if environment == "production" {
        consoleLevel = zap.InfoLevel
    }

    // 文件日志核心，按日期命名并滚动
    fileCore := zapcore.NewCore(
        zapcore.NewJSONEncoder(encoderConfig),
        zapcore.AddSync(&lumberjack.Logger{
            Filename:   fmt.Sprintf("logs/mindmirror_%s.log", time.Now().Format("2006-01-02")),
            MaxSize:    100, // MB
            MaxBackups: 30,
            MaxAge:     90, // days
        }),
        zap.InfoLevel,
    )

    // 控制台日志核心
    consoleCore := zapcore.NewCore(
        zapcore.NewConsoleEncoder(encoderConfig),
        zapcore.AddSync(os.Stdout),
        consoleLevel,
    )

    core := zapcore.NewTee(fileCore, consoleCore)

    logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
    Logger = logger.Sugar()
    return nil
}
