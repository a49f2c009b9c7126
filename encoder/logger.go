package encoder

import (
	"github.com/OdyseeTeam/videoshrink/pkg/logging"
	"go.uber.org/zap"
)

var logger = logging.Create("encoder", logging.Prod)

func SetLogger(l *zap.SugaredLogger) {
	logger = l
}
