package logger

import "github.com/sirupsen/logrus"

// HTTP 接口请求留痕日志，按天切割
var HTTP *logrus.Logger

func InitLogger() {
	HTTP = NewLogger("http")
}
