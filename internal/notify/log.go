package notify

import (
	"context"

	"go.uber.org/zap"
)

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	fields := []zap.Field{
		zap.String("id", ev.ID),
		zap.String("kind", ev.Kind),
		zap.String("entity", ev.Entity),
		zap.Uint("entity_id", ev.EntityID),
	}

	switch ev.Level {
	case LevelError:
		n.log.Error(ev.Message, fields...)
	case LevelWarning:
		n.log.Warn(ev.Message, fields...)
	default:
		n.log.Info(ev.Message, fields...)
	}
	return nil
}
