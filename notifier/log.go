package notifier

import (
	"go.uber.org/zap"

	"github.com/sonderworks/beacon/log"
)

type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier() Notifier {
	return &LogNotifier{
		log: log.S().Named("notify"),
	}
}

func (n *LogNotifier) Info(msg string) {
	n.log.Info(msg)
}

func (n *LogNotifier) Error(err error) {
	n.log.Error(err)
}
